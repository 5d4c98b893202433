package modkit

// Event names pushed through a Broadcaster. Payload shapes are owned by the
// emitting service; observers treat them as opaque JSON
const (
	EventDepartureBatch  = "departure.batch"
	EventDepartureResult = "departure.result"
	EventBunker          = "bunker.update"
	EventPrices          = "prices.update"
	EventVesselCount     = "vessels.count"
	EventRepairCount     = "repair.count"
	EventDrydockCount    = "drydock.count"
	EventLocks           = "locks.update"
	EventNotice          = "notice"
)

// Notice levels for EventNotice payloads
const (
	NoticeInfo    = "info"
	NoticeWarning = "warning"
	NoticeError   = "error"
)

// Notice is the generic operator-facing notification payload
type Notice struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}
