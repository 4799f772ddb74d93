package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/project-board/internal/config"
	"github.com/spec-kit/project-board/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMemberInvited, n.handleMemberInvited)
	n.dispatcher.Subscribe(events.EventMemberRoleChanged, n.handleMemberRoleChanged)
	n.dispatcher.Subscribe(events.EventMemberRemoved, n.handleMemberRemoved)
	n.dispatcher.Subscribe(events.EventTaskMoved, n.handleTaskMoved)
	n.dispatcher.Subscribe(events.EventStatusUpdatePosted, n.handleStatusUpdatePosted)
}

func (n *NotificationService) handleMemberInvited(ctx context.Context, event events.Event) error {
	n.logger.Info("MemberInvited", zap.String("member_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMemberRoleChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("MemberRoleChanged", zap.String("member_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleMemberRemoved(ctx context.Context, event events.Event) error {
	n.logger.Info("MemberRemoved", zap.String("member_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTaskMoved(ctx context.Context, event events.Event) error {
	n.logger.Info("TaskMoved", zap.String("task_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStatusUpdatePosted(ctx context.Context, event events.Event) error {
	n.logger.Info("StatusUpdatePosted", zap.String("update_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
