package pgreq

// Statement describes a named prepared statement together with the
// declared type OIDs of its parameters. A zero OID leaves that
// parameter's type to be inferred by the server. The empty name selects
// the unnamed statement.
type Statement struct {
	Name      string
	ParamOIDs []uint32
}

// Bind pairs the statement with concrete parameter values.
func (s Statement) Bind(params ...Param) BoundStatement {
	return BoundStatement{Name: s.Name, Params: params}
}

// BoundStatement is a prepared statement name plus the parameter values
// of one execution.
type BoundStatement struct {
	Name   string
	Params []Param
}
