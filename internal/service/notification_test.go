package service

import (
	"context"
	"fmt"
	"testing"

	"habitcircle_backend/internal/service/mocks"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func makeTokens(n int) []string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("token-%04d", i)
	}
	return tokens
}

func allSuccess(n int) *messaging.BatchResponse {
	responses := make([]*messaging.SendResponse, n)
	for i := range responses {
		responses[i] = &messaging.SendResponse{Success: true, MessageID: fmt.Sprintf("m-%d", i)}
	}
	return &messaging.BatchResponse{SuccessCount: n, Responses: responses}
}

func TestNotificationService_SendMulticast_EmptyTokens(t *testing.T) {
	mockClient := &mocks.MockPushClient{}
	svc := NewNotificationService(mockClient, zap.NewNop())

	outcome, err := svc.SendMulticast(context.Background(), nil, "title", "body")

	assert.NoError(t, err)
	assert.Equal(t, 0, outcome.SuccessCount)
	assert.Equal(t, 0, outcome.FailureCount())
	mockClient.AssertNotCalled(t, "SendEachForMulticast", mock.Anything, mock.Anything)
}

func TestNotificationService_SendMulticast_SplitsBatches(t *testing.T) {
	mockClient := &mocks.MockPushClient{}
	svc := NewNotificationService(mockClient, zap.NewNop())

	mockClient.On("SendEachForMulticast", mock.Anything, mock.MatchedBy(func(msg *messaging.MulticastMessage) bool {
		return len(msg.Tokens) == 500
	})).Return(allSuccess(500), nil).Twice()
	mockClient.On("SendEachForMulticast", mock.Anything, mock.MatchedBy(func(msg *messaging.MulticastMessage) bool {
		return len(msg.Tokens) == 200
	})).Return(allSuccess(200), nil).Once()

	outcome, err := svc.SendMulticast(context.Background(), makeTokens(1200), "title", "body")

	var batchSizes []int
	for _, call := range mockClient.Calls {
		msg := call.Arguments.Get(1).(*messaging.MulticastMessage)
		batchSizes = append(batchSizes, len(msg.Tokens))
	}

	assert.NoError(t, err)
	assert.Equal(t, 1200, outcome.SuccessCount)
	assert.Equal(t, 0, outcome.FailureCount())
	assert.Equal(t, []int{500, 500, 200}, batchSizes)
	mockClient.AssertNumberOfCalls(t, "SendEachForMulticast", 3)
}

func TestNotificationService_SendMulticast_PartialFailures(t *testing.T) {
	mockClient := &mocks.MockPushClient{}
	svc := NewNotificationService(mockClient, zap.NewNop())

	resp := &messaging.BatchResponse{
		SuccessCount: 2,
		FailureCount: 1,
		Responses: []*messaging.SendResponse{
			{Success: true, MessageID: "m-0"},
			{Success: false, Error: assert.AnError},
			{Success: true, MessageID: "m-2"},
		},
	}
	mockClient.On("SendEachForMulticast", mock.Anything, mock.Anything).Return(resp, nil)

	tokens := []string{"t-a", "t-b", "t-c"}
	outcome, err := svc.SendMulticast(context.Background(), tokens, "title", "body")

	assert.NoError(t, err)
	assert.Equal(t, 2, outcome.SuccessCount)
	assert.Equal(t, 1, outcome.FailureCount())
	assert.Equal(t, "t-b", outcome.Failures[0].Token)
	assert.Equal(t, "unknown", outcome.Failures[0].Code)
	assert.Equal(t, assert.AnError.Error(), outcome.Failures[0].Message)
}

func TestNotificationService_SendMulticast_BatchFailureContinues(t *testing.T) {
	mockClient := &mocks.MockPushClient{}
	svc := NewNotificationService(mockClient, zap.NewNop())

	// First batch fails outright, second still goes out.
	mockClient.On("SendEachForMulticast", mock.Anything, mock.MatchedBy(func(msg *messaging.MulticastMessage) bool {
		return len(msg.Tokens) == 500
	})).Return(nil, assert.AnError).Once()
	mockClient.On("SendEachForMulticast", mock.Anything, mock.MatchedBy(func(msg *messaging.MulticastMessage) bool {
		return len(msg.Tokens) == 1
	})).Return(allSuccess(1), nil).Once()

	outcome, err := svc.SendMulticast(context.Background(), makeTokens(501), "title", "body")

	assert.NoError(t, err)
	assert.Equal(t, 1, outcome.SuccessCount)
	assert.Equal(t, 500, outcome.FailureCount())
	mockClient.AssertExpectations(t)
}

func TestNotificationService_SendSingle(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		mockSetup func(mockClient *mocks.MockPushClient)
		wantSend  bool
	}{
		{
			name:  "absent token is a no-op",
			token: "",
		},
		{
			name:  "successful send",
			token: "t-1",
			mockSetup: func(mockClient *mocks.MockPushClient) {
				mockClient.On("Send", mock.Anything, mock.MatchedBy(func(msg *messaging.Message) bool {
					return msg.Token == "t-1" &&
						msg.Notification.Title == "title" &&
						msg.Notification.Body == "body"
				})).Return("m-1", nil)
			},
			wantSend: true,
		},
		{
			name:  "provider failure is swallowed",
			token: "t-2",
			mockSetup: func(mockClient *mocks.MockPushClient) {
				mockClient.On("Send", mock.Anything, mock.Anything).Return("", assert.AnError)
			},
			wantSend: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &mocks.MockPushClient{}
			if tt.mockSetup != nil {
				tt.mockSetup(mockClient)
			}
			svc := NewNotificationService(mockClient, zap.NewNop())

			err := svc.SendSingle(context.Background(), tt.token, "title", "body")

			assert.NoError(t, err)
			if !tt.wantSend {
				mockClient.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
			}
			mockClient.AssertExpectations(t)
		})
	}
}
