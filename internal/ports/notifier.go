package ports

import "github.com/bnema/camp-cli/internal/domain"

type Notifier interface {
	Notify(n domain.Notification)
}

type NopNotifier struct{}

func (NopNotifier) Notify(domain.Notification) {}
