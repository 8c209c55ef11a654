package domain

type Op string

const (
	OP_CONSTRUCT Op = "construct"
	OP_REGISTER  Op = "register"
	OP_CALL      Op = "call"
)

// Arg is a named instruction argument. Ref args name another constructed object.
type Arg struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
	Ref   bool   `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// Instruction is one step of the wiring sequence handed to the application runtime.
type Instruction struct {
	Op     Op     `json:"op" yaml:"op"`
	Target string `json:"target" yaml:"target"`
	Class  string `json:"class,omitempty" yaml:"class,omitempty"`
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	Args   []Arg  `json:"args,omitempty" yaml:"args,omitempty"`
	// Aggregate args are passed to the hub as a single struct value.
	Aggregate bool `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
}

func ValueArg(name string, value any) Arg {
	return Arg{Name: name, Value: value}
}

func RefArg(name string, id string) Arg {
	return Arg{Name: name, Value: id, Ref: true}
}

func Construct(target string, class string, args ...Arg) Instruction {
	return Instruction{Op: OP_CONSTRUCT, Target: target, Class: class, Args: args}
}

func Register(target string) Instruction {
	return Instruction{Op: OP_REGISTER, Target: target}
}

func Call(target string, method string, args ...Arg) Instruction {
	return Instruction{Op: OP_CALL, Target: target, Method: method, Args: args}
}

// Build is the outcome of one successful generation run.
type Build struct {
	Hub          HubConfig        `json:"hub" yaml:"hub"`
	ModelKnown   bool             `json:"model_known" yaml:"model_known"`
	Capabilities CapabilityRecord `json:"capabilities" yaml:"capabilities"`
	Entities     []EntityConfig   `json:"-" yaml:"-"`
	Instructions []Instruction    `json:"instructions" yaml:"instructions"`
}
