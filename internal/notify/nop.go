package notify

import "github.com/ghlaw/taskdesk/internal/domain"

// NopNotifier discards every notification. It stands in for the dispatcher
// when no mail transport is configured.
type NopNotifier struct{}

var _ Notifier = NopNotifier{}

func (NopNotifier) TaskCreated(*domain.Task) {}

func (NopNotifier) TaskUpdated(*domain.Task) {}
