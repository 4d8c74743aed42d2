package report

import (
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

var _ easyjson.Marshaler = Report{}
var _ easyjson.Unmarshaler = &Report{}

func (r Report) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawString(`{"run_id":`)
	out.String(r.RunID)
	out.RawString(`,"digest":`)
	out.String(r.Digest)
	out.RawString(`,"mode":`)
	out.String(r.Mode)
	if r.Gaps {
		out.RawString(`,"gaps":`)
		out.Bool(r.Gaps)
	}
	out.RawString(`,"minimum":`)
	out.Uint64(r.Minimum)
	if r.Points != 0 {
		out.RawString(`,"points":`)
		out.Uint64(r.Points)
	}
	if r.SeedRanges != 0 {
		out.RawString(`,"seed_ranges":`)
		out.Uint64(r.SeedRanges)
	}
	if r.WorkItems != 0 {
		out.RawString(`,"work_items":`)
		out.Uint64(r.WorkItems)
	}
	if r.Splits != 0 {
		out.RawString(`,"splits":`)
		out.Uint64(r.Splits)
	}
	out.RawString(`,"duration_ms":`)
	out.Int64(r.DurationMilliseconds)
	out.RawByte('}')
}

func (r Report) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	r.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

func (r *Report) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}

	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}

		switch key {
		case "run_id":
			r.RunID = in.String()
		case "digest":
			r.Digest = in.String()
		case "mode":
			r.Mode = in.String()
		case "gaps":
			r.Gaps = in.Bool()
		case "minimum":
			r.Minimum = in.Uint64()
		case "points":
			r.Points = in.Uint64()
		case "seed_ranges":
			r.SeedRanges = in.Uint64()
		case "work_items":
			r.WorkItems = in.Uint64()
		case "splits":
			r.Splits = in.Uint64()
		case "duration_ms":
			r.DurationMilliseconds = in.Int64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func (r *Report) UnmarshalJSON(data []byte) error {
	l := jlexer.Lexer{Data: data}
	r.UnmarshalEasyJSON(&l)
	return l.Error()
}
