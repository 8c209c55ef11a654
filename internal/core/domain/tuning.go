package domain

type MeasurementKind string

const (
	MEASUREMENT_VOC MeasurementKind = "voc"
	MEASUREMENT_NOX MeasurementKind = "nox"
)

// AlgorithmTuning holds the gas index algorithm parameters.
// When forwarded to the hub all six values travel together.
type AlgorithmTuning struct {
	IndexOffset              int64 `json:"index_offset" yaml:"index_offset"`
	LearningTimeOffsetHours  int64 `json:"learning_time_offset_hours" yaml:"learning_time_offset_hours"`
	LearningTimeGainHours    int64 `json:"learning_time_gain_hours" yaml:"learning_time_gain_hours"`
	GatingMaxDurationMinutes int64 `json:"gating_max_duration_minutes" yaml:"gating_max_duration_minutes"`
	StdInitial               int64 `json:"std_initial" yaml:"std_initial"`
	GainFactor               int64 `json:"gain_factor" yaml:"gain_factor"`
}

type TuningField struct {
	Key string
	Min int64
	Max int64
}

// TuningFields lists the tuning parameters in hub argument order.
var TuningFields = []TuningField{
	{Key: "index_offset", Min: 1, Max: 250},
	{Key: "learning_time_offset_hours", Min: 1, Max: 1000},
	{Key: "learning_time_gain_hours", Min: 1, Max: 1000},
	{Key: "gating_max_duration_minutes", Min: 0, Max: 3000},
	{Key: "std_initial", Min: 10, Max: 5000},
	{Key: "gain_factor", Min: 1, Max: 1000},
}

var defaultTunings = map[MeasurementKind]AlgorithmTuning{
	MEASUREMENT_VOC: {
		IndexOffset:              100,
		LearningTimeOffsetHours:  12,
		LearningTimeGainHours:    12,
		GatingMaxDurationMinutes: 180,
		StdInitial:               50,
		GainFactor:               230,
	},
	MEASUREMENT_NOX: {
		IndexOffset:              1,
		LearningTimeOffsetHours:  12,
		LearningTimeGainHours:    12,
		GatingMaxDurationMinutes: 720,
		StdInitial:               50,
		GainFactor:               230,
	},
}

func DefaultTuning(kind MeasurementKind) AlgorithmTuning {
	return defaultTunings[kind]
}

// Values returns the parameters in TuningFields order.
func (t AlgorithmTuning) Values() []int64 {
	return []int64{
		t.IndexOffset,
		t.LearningTimeOffsetHours,
		t.LearningTimeGainHours,
		t.GatingMaxDurationMinutes,
		t.StdInitial,
		t.GainFactor,
	}
}

// WithValue returns a copy with the parameter named key replaced.
func (t AlgorithmTuning) WithValue(key string, v int64) AlgorithmTuning {
	switch key {
	case "index_offset":
		t.IndexOffset = v
	case "learning_time_offset_hours":
		t.LearningTimeOffsetHours = v
	case "learning_time_gain_hours":
		t.LearningTimeGainHours = v
	case "gating_max_duration_minutes":
		t.GatingMaxDurationMinutes = v
	case "std_initial":
		t.StdInitial = v
	case "gain_factor":
		t.GainFactor = v
	}
	return t
}
