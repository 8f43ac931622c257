package transcript

// JSON paths of a direct chat record:
//
//	{"type":"agent","text":"...","user_id":"...","is_final":true,"time":1700000000000}
const (
	PathType    = "type"
	PathText    = "text"
	PathUserID  = "user_id"
	PathIsFinal = "is_final"
	PathTime    = "time"
)

// JSON paths of an RTC data-stream text message:
//
//	{"data_type":"transcribe","stream_id":0,"text":"...","is_final":false,"text_ts":1700000000000}
const (
	PathDataType = "data_type"
	PathStreamID = "stream_id"
	PathTextTS   = "text_ts"
)

// DataTypeTranscribe marks speech transcription messages.
const DataTypeTranscribe = "transcribe"
