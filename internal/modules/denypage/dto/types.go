package dto

type PageOutput struct {
	Host      string
	Goal      string
	Intention string
}

type StatusOutput struct {
	PID            int
	Running        bool
	Spawned        bool
	HTTPAddr       string
	HTTPSAddr      string
	HTTPReachable  bool
	HTTPSReachable bool
}
