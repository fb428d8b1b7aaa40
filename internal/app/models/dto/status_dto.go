package dto

// HealthResponse reports process and store liveness
type HealthResponse struct {
	Status string `json:"status"`
	DB     bool   `json:"db"`
}

// EndpointMap lists the collection endpoints served
type EndpointMap struct {
	Students string `json:"students"`
	Courses  string `json:"courses"`
	Grades   string `json:"grades"`
	Health   string `json:"health"`
}

// StatusResponse is the root summary
type StatusResponse struct {
	Status    string      `json:"status"`
	UsingDB   bool        `json:"usingDb"`
	Frontend  string      `json:"frontend"`
	Endpoints EndpointMap `json:"endpoints"`
}
