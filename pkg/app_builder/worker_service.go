package appbuilder

// WorkerService is a background component started alongside the REST API.
type WorkerService interface {
	GetServiceName() string
	StartService()
	StopService()
}
