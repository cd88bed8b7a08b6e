package table

type listInput struct {
	Table string `path:"table" example:"destinations" doc:"Collection name"`
}

type listOutput struct {
	Body []map[string]any
}

type createInput struct {
	Table   string `path:"table" example:"destinations" doc:"Collection name"`
	RawBody []byte
}

type findInput struct {
	Table string `path:"table" example:"destinations" doc:"Collection name"`
	ID    string `path:"id" example:"great-wall" doc:"Record id"`
}

type updateInput struct {
	Table   string `path:"table" example:"destinations" doc:"Collection name"`
	ID      string `path:"id" example:"great-wall" doc:"Record id"`
	IfMatch string `header:"If-Match" doc:"Expected record version; a mismatch yields 409"`
	RawBody []byte
}

type deleteInput struct {
	Table string `path:"table" example:"destinations" doc:"Collection name"`
	ID    string `path:"id" example:"great-wall" doc:"Record id"`
}

type recordOutput struct {
	Body map[string]any
}

type deleteOutput struct{}
