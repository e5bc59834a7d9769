package issues

import (
	"encoding/json"
	"fmt"
)

// List is an issue slice with a stable JSON envelope, used when persisting
// issues to the validations table and decoding them back.
type List []Issue

const (
	typeMismatch     = "prescription_mismatch"
	typeFrameFlag    = "frame_complexity_flag"
	typeInsufficient = "insufficient_data"
)

type envelope struct {
	Type     string          `json:"type"`
	Severity Severity        `json:"severity"`
	Data     json.RawMessage `json:"data"`
}

// MarshalJSON encodes each issue as {type, severity, data} so the variant
// survives the round trip through JSONB.
func (l List) MarshalJSON() ([]byte, error) {
	out := make([]envelope, 0, len(l))
	for _, i := range l {
		var t string
		switch i.(type) {
		case PrescriptionMismatch:
			t = typeMismatch
		case FrameComplexityFlag:
			t = typeFrameFlag
		case InsufficientData:
			t = typeInsufficient
		default:
			return nil, fmt.Errorf("unknown issue variant %T", i)
		}

		data, err := json.Marshal(i)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", t, err)
		}

		out = append(out, envelope{Type: t, Severity: i.Severity(), Data: data})
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the {type, severity, data} envelope back into
// concrete variants. Unknown types are an error, not a silent skip.
func (l *List) UnmarshalJSON(data []byte) error {
	var raw []envelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(List, 0, len(raw))
	for _, e := range raw {
		switch e.Type {
		case typeMismatch:
			var m PrescriptionMismatch
			if err := json.Unmarshal(e.Data, &m); err != nil {
				return fmt.Errorf("unmarshal %s: %w", e.Type, err)
			}
			out = append(out, m)
		case typeFrameFlag:
			var f FrameComplexityFlag
			if err := json.Unmarshal(e.Data, &f); err != nil {
				return fmt.Errorf("unmarshal %s: %w", e.Type, err)
			}
			out = append(out, f)
		case typeInsufficient:
			var d InsufficientData
			if err := json.Unmarshal(e.Data, &d); err != nil {
				return fmt.Errorf("unmarshal %s: %w", e.Type, err)
			}
			out = append(out, d)
		default:
			return fmt.Errorf("unknown issue type %q", e.Type)
		}
	}

	*l = out
	return nil
}
