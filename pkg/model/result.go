package model

// ResultType is the outcome of a local install.
type ResultType string

const (
	ResultSuccess ResultType = "success"
	ResultFailure ResultType = "failure"
)

// InstallErrorType tells the failure variants of a local install apart.
type InstallErrorType string

const (
	// ErrorReadingFile means the archive could not be read or has no usable manifest.
	ErrorReadingFile InstallErrorType = "error reading file"
	// ErrorAppExists means a local app with the same name is already installed.
	ErrorAppExists InstallErrorType = "error because app exists"
)

// InstallResult is the tagged result of installing a local app archive.
type InstallResult struct {
	Type         ResultType       `json:"type"`
	App          *LocalApp        `json:"app,omitempty"`
	ErrorType    InstallErrorType `json:"errorType,omitempty"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
	AppName      string           `json:"appName,omitempty"`
	AppPath      string           `json:"appPath,omitempty"`
}

// SuccessfulInstall reports an installed app.
func SuccessfulInstall(app *LocalApp) InstallResult {
	return InstallResult{Type: ResultSuccess, App: app}
}

// FailureReadingFile reports an archive that could not be read.
func FailureReadingFile(message string) InstallResult {
	return InstallResult{Type: ResultFailure, ErrorType: ErrorReadingFile, ErrorMessage: message}
}

// AppExists reports a collision with an installed local app.
func AppExists(appName, appPath string) InstallResult {
	return InstallResult{Type: ResultFailure, ErrorType: ErrorAppExists, AppName: appName, AppPath: appPath}
}

// Succeeded reports whether the install went through.
func (r InstallResult) Succeeded() bool {
	return r.Type == ResultSuccess
}
