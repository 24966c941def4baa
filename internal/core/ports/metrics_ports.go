package ports

type Metrics interface {
	VoteCast(option string)
	QueuePushFailed()
	HealthChecked(healthy bool)
}
