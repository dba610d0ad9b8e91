// Package errcode defines the stable machine-readable error codes exposed
// on the API. Codes are part of the client contract and never change, even
// when messages do.
package errcode

import "net/http"

// Code binds a stable string code to an HTTP status and a human message.
type Code struct {
	Status  int
	Code    string
	Message string
}

var (
	// 404 Not Found
	NotFound = Code{http.StatusNotFound, "404", "resource does not exist"}

	// User
	UserNotFound           = Code{http.StatusNotFound, "U001", "user not found"}
	EmailDuplication       = Code{http.StatusConflict, "U002", "email already exists"}
	LoginInputInvalid      = Code{http.StatusBadRequest, "U003", "login input is invalid"}
	UserDataIntegrityError = Code{http.StatusInternalServerError, "U004", "user data integrity error"}

	// Profile image
	ProfileImageRequired        = Code{http.StatusBadRequest, "P001", "profile image is required"}
	ProfileImageTooLarge        = Code{http.StatusBadRequest, "P002", "image must be 10MB or smaller"}
	ProfileImageInvalidType     = Code{http.StatusBadRequest, "P003", "only image files can be uploaded"}
	ProfileImageProcessingError = Code{http.StatusInternalServerError, "P004", "error while processing image"}

	// Zone
	ZoneNotFound            = Code{http.StatusNotFound, "Z001", "zone not found"}
	ZoneAlreadyExists       = Code{http.StatusConflict, "Z002", "zone already exists"}
	ZoneSaveDatabaseError   = Code{http.StatusInternalServerError, "Z003", "error while saving data"}
	ZoneDeleteDatabaseError = Code{http.StatusInternalServerError, "Z004", "error while deleting data"}
	ZoneImageUploadError    = Code{http.StatusInternalServerError, "Z005", "error while uploading image"}
	ZoneImageDeleteError    = Code{http.StatusInternalServerError, "Z006", "error while deleting image"}

	// Search
	SearchKeywordInvalid   = Code{http.StatusBadRequest, "S001", "search keyword is invalid"}
	SearchKeywordTooShort  = Code{http.StatusBadRequest, "S002", "search keyword must be at least 2 characters"}
	SearchKeywordTooLong   = Code{http.StatusBadRequest, "S003", "search keyword may be at most 100 characters"}
	SearchParameterInvalid = Code{http.StatusBadRequest, "S004", "search parameter is invalid"}
	SearchNoResults        = Code{http.StatusNotFound, "S005", "no search results"}
	SearchDatabaseError    = Code{http.StatusInternalServerError, "S006", "database error during search"}

	// Location and zoom
	LocationCoordinatesInvalid = Code{http.StatusBadRequest, "L001", "location coordinates are invalid"}
	LocationLatitudeInvalid    = Code{http.StatusBadRequest, "L002", "latitude is invalid (range -90 to 90)"}
	LocationLongitudeInvalid   = Code{http.StatusBadRequest, "L003", "longitude is invalid (range -180 to 180)"}
	ZoomLevelInvalid           = Code{http.StatusBadRequest, "L004", "zoom level is invalid (range 1-15)"}
	ZoomLevelTooLow            = Code{http.StatusBadRequest, "L005", "zoom level is too low (minimum 1)"}
	ZoomLevelTooHigh           = Code{http.StatusBadRequest, "L006", "zoom level is too high (maximum 15)"}
	ZoomLevelRequired          = Code{http.StatusBadRequest, "L007", "zoom level is required"}
	RadiusInvalid              = Code{http.StatusBadRequest, "L008", "radius is invalid (range 0.1-100km)"}

	// File storage
	FileUploadError  = Code{http.StatusInternalServerError, "F001", "error while uploading file"}
	FileDeleteError  = Code{http.StatusInternalServerError, "F002", "error while deleting file"}
	FileNotFound     = Code{http.StatusNotFound, "F003", "file not found"}
	FileSizeTooLarge = Code{http.StatusBadRequest, "F004", "file is too large"}
	FileTypeInvalid  = Code{http.StatusBadRequest, "F005", "unsupported file type"}

	// S3 storage
	S3UploadError = Code{http.StatusInternalServerError, "S301", "error while uploading file to S3"}
	S3DeleteError = Code{http.StatusInternalServerError, "S302", "error while deleting file from S3"}
	S3AccessError = Code{http.StatusInternalServerError, "S303", "error while accessing S3"}

	// Validation
	ValidationError      = Code{http.StatusBadRequest, "V001", "input validation failed"}
	RequiredFieldMissing = Code{http.StatusBadRequest, "V002", "required field is missing"}
	InvalidFormat        = Code{http.StatusBadRequest, "V003", "invalid format"}

	// System
	InternalServerError  = Code{http.StatusInternalServerError, "SYS001", "internal server error"}
	DatabaseError        = Code{http.StatusInternalServerError, "SYS002", "database error"}
	ExternalServiceError = Code{http.StatusInternalServerError, "SYS003", "external service error"}
)

// All lists every defined code, used by tests guarding code stability.
func All() []Code {
	return []Code{
		NotFound,
		UserNotFound, EmailDuplication, LoginInputInvalid, UserDataIntegrityError,
		ProfileImageRequired, ProfileImageTooLarge, ProfileImageInvalidType, ProfileImageProcessingError,
		ZoneNotFound, ZoneAlreadyExists, ZoneSaveDatabaseError, ZoneDeleteDatabaseError,
		ZoneImageUploadError, ZoneImageDeleteError,
		SearchKeywordInvalid, SearchKeywordTooShort, SearchKeywordTooLong,
		SearchParameterInvalid, SearchNoResults, SearchDatabaseError,
		LocationCoordinatesInvalid, LocationLatitudeInvalid, LocationLongitudeInvalid,
		ZoomLevelInvalid, ZoomLevelTooLow, ZoomLevelTooHigh, ZoomLevelRequired, RadiusInvalid,
		FileUploadError, FileDeleteError, FileNotFound, FileSizeTooLarge, FileTypeInvalid,
		S3UploadError, S3DeleteError, S3AccessError,
		ValidationError, RequiredFieldMissing, InvalidFormat,
		InternalServerError, DatabaseError, ExternalServiceError,
	}
}
