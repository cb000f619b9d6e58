package config

// definition is the raw configuration as read by viper, before validation.
type definition struct {
	Debug        bool
	Quiet        bool
	LogFormat    string
	StepLimit    int
	OutputFormat string
}
