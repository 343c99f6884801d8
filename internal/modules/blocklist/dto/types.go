package dto

type BlockInput struct {
	Domains []string
}

type BlockOutput struct {
	Region string
	Rules  int
}

type StatusOutput struct {
	GoalDomains []string
	AdRules     int
	AdsEnabled  bool
}
