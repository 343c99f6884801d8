package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type InvokeInput struct {
	PluginName  string
	Capability  string
	PayloadJSON string
	Goal        string
	Intention   string
}

type InvokeOutput struct {
	PluginName string
	Capability string
	OutputJSON string
	Cancelled  bool
}

// Capability payloads. Callers marshal these into InvokeInput.PayloadJSON
// and decode OutputJSON into the matching result.

type NotifyPayload struct {
	Summary string `json:"summary"`
	Body    string `json:"body"`
	Urgency string `json:"urgency"`
}

type ThemePayload struct {
	Theme string `json:"theme"`
}

type PromptIntentionPayload struct {
	Goal    string `json:"goal"`
	Current string `json:"current"`
}

type PromptIntentionResult struct {
	Intention string `json:"intention"`
}

type FeedbackPayload struct {
	Goal      string `json:"goal"`
	Intention string `json:"intention"`
}

type FeedbackResult struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
