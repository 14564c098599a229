package period

// Response is the wire form of a Period.
type Response struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
	Year  int    `json:"year"`
}

func ToResponse(p Period) Response {
	return Response{
		Start: p.Start.Format(DateLayout),
		End:   p.End.Format(DateLayout),
		Label: Format(p),
		Year:  p.Year(),
	}
}
