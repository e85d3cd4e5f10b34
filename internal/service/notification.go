package service

import (
	"context"

	"habitcircle_backend/internal/model"
	"habitcircle_backend/internal/push"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

type NotificationService struct {
	client push.Client
	log    *zap.Logger
}

func NewNotificationService(client push.Client, log *zap.Logger) *NotificationService {
	return &NotificationService{
		client: client,
		log:    log,
	}
}

// SendMulticast delivers one notification to every token, splitting the list
// into provider-sized batches. A failed recipient or even a failed batch never
// aborts the remaining batches; all failures are accounted per token.
func (s *NotificationService) SendMulticast(ctx context.Context, tokens []string, title, body string) (*model.MulticastOutcome, error) {
	outcome := &model.MulticastOutcome{}
	if len(tokens) == 0 {
		return outcome, nil
	}

	for start := 0; start < len(tokens); start += push.MulticastLimit {
		end := start + push.MulticastLimit
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[start:end]

		resp, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
		})
		if err != nil {
			s.log.Warn("multicast batch failed",
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
			for _, token := range batch {
				outcome.Failures = append(outcome.Failures, model.SendFailure{
					Token:   token,
					Code:    push.ErrorCode(err),
					Message: err.Error(),
				})
			}
			continue
		}

		outcome.SuccessCount += resp.SuccessCount
		for i, r := range resp.Responses {
			if r.Success {
				continue
			}
			failure := model.SendFailure{
				Token: batch[i],
				Code:  push.ErrorCode(r.Error),
			}
			if r.Error != nil {
				failure.Message = r.Error.Error()
			}
			outcome.Failures = append(outcome.Failures, failure)
		}
	}

	for _, f := range outcome.Failures {
		s.log.Warn("notification delivery failed",
			zap.String("token", f.Token),
			zap.String("code", f.Code),
			zap.String("message", f.Message))
	}
	s.log.Info("multicast dispatch finished",
		zap.Int("success_count", outcome.SuccessCount),
		zap.Int("failure_count", outcome.FailureCount()))

	return outcome, nil
}

// SendSingle sends a best-effort notification to one recipient. An absent
// token is a no-op and provider failures are logged, not returned.
func (s *NotificationService) SendSingle(ctx context.Context, token, title, body string) error {
	if token == "" {
		return nil
	}

	_, err := s.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	})
	if err != nil {
		s.log.Warn("push send failed",
			zap.String("code", push.ErrorCode(err)),
			zap.Error(err))
		return nil
	}

	return nil
}

var _ NotificationServiceI = (*NotificationService)(nil)
