package cmd

type Config struct {
	HTTPPort             string
	SchedulingAPIBaseURL string
	PushWSURL            string
	PollIntervalSeconds  int
}
