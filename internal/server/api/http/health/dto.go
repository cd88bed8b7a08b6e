package health

type checkInput struct{}

type checkOutput struct {
	Body Status
}

// Status reports liveness plus which service answered, so a probe
// against a wrong address fails loudly instead of looking healthy.
type Status struct {
	Status  string `json:"status" example:"OK" doc:"Liveness of the table service"`
	Service string `json:"service" example:"zervitravel-tables" doc:"Identity of the answering service"`
}
