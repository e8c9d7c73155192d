package events

type CashedOut struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
	Currency  string `json:"currency"`
	Amount    int64  `json:"amount"`
	TsUnixMs  int64  `json:"ts_unix_ms"`
}
