package meshgo_test

import "encoding/json"

// jsonDoc lets tests hand-write snapshot payloads.
type jsonDoc string

func (d jsonDoc) MarshalJSON() ([]byte, error) { return json.RawMessage(d), nil }
