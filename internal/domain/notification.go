package domain

type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyInfo    NotificationLevel = "info"
	NotifyError   NotificationLevel = "error"
)

type Notification struct {
	Level   NotificationLevel
	Title   string
	Message string
}
