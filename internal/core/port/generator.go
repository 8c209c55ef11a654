package port

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"
)

type ConfigGenerator interface {
	Generate(source []byte) (*domain.Build, error)
}
