package constants

// response codes surfaced to clients so the frontend can render
// deterministic UI states without parsing message text
var (
	FACE_NOT_DETECTED       uint = 4210 // ask the user to retake the photo
	MULTIPLE_FACES_DETECTED uint = 4220 // ask the user to retake the photo alone
	FACE_QUALITY_REJECTED   uint = 4230 // show the per-issue guidance returned in errors
	LIVENESS_REJECTED       uint = 4240 // show per-check liveness feedback
	IDENTIFY_AMBIGUOUS      uint = 4310 // show the candidate picker
	IDENTIFY_NO_MATCH       uint = 4320 // suggest password login or enrollment
	SESSION_EXPIRED         uint = 4330 // restart identification
	INVALID_SELECTION       uint = 4340 // restart identification, logged as security-relevant
	RATE_LIMITED            uint = 4350 // show backoff messaging
)

const MaxLivenessUploadFrames = 60

const SupportEmail = "support@lifex.health"
