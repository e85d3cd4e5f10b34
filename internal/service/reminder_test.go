package service

import (
	"context"
	"testing"
	"time"

	"habitcircle_backend/internal/model"
	"habitcircle_backend/internal/schedule"
	"habitcircle_backend/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// 2024-06-05 is a Wednesday; only DAILY is active.
var wednesdayTick = time.Date(2024, 6, 5, 20, 0, 0, 0, schedule.JST)

// 2024-06-09 is a Sunday; DAILY and WEEKLY are active.
var sundayTick = time.Date(2024, 6, 9, 20, 0, 0, 0, schedule.JST)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func post(userID, questID string) *model.TimelinePost {
	return &model.TimelinePost{UserID: userID, QuestID: questID}
}

func newReminderMocks() (*mocks.MockUserRepository, *mocks.MockQuestRepository, *mocks.MockTimelineRepository, *mocks.MockNotificationService) {
	return &mocks.MockUserRepository{}, &mocks.MockQuestRepository{}, &mocks.MockTimelineRepository{}, &mocks.MockNotificationService{}
}

func TestReminderService_DailyQuestMissing(t *testing.T) {
	users, quests, timelines, notifier := newReminderMocks()
	svc := NewReminderService(users, quests, timelines, notifier, fixedClock(wednesdayTick), zap.NewNop())

	dayStart := time.Date(2024, 6, 5, 0, 0, 0, 0, schedule.JST)
	timelines.On("ListPostsSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return since.Equal(dayStart)
	})).Return([]*model.TimelinePost{}, nil)
	quests.On("ListQuests", mock.Anything).Return([]*model.Quest{
		{ID: "q1", Frequency: model.FrequencyDaily},
	}, nil)
	users.On("ListUsers", mock.Anything).Return([]*model.User{
		{ID: "alice", FCMToken: "tok-alice", ParticipatingQuestIDs: []string{"q1"}},
	}, nil)
	notifier.On("SendMulticast", mock.Anything, []string{"tok-alice"}, reminderTitle, reminderBody).
		Return(&model.MulticastOutcome{SuccessCount: 1}, nil)

	err := svc.SendDailyReminders(context.Background())

	assert.NoError(t, err)
	notifier.AssertExpectations(t)
	timelines.AssertNumberOfCalls(t, "ListPostsSince", 1)
}

func TestReminderService_CompletedTodayExcluded(t *testing.T) {
	users, quests, timelines, notifier := newReminderMocks()
	svc := NewReminderService(users, quests, timelines, notifier, fixedClock(wednesdayTick), zap.NewNop())

	timelines.On("ListPostsSince", mock.Anything, mock.Anything).
		Return([]*model.TimelinePost{post("alice", "q1")}, nil)
	quests.On("ListQuests", mock.Anything).Return([]*model.Quest{
		{ID: "q1", Frequency: model.FrequencyDaily},
	}, nil)
	users.On("ListUsers", mock.Anything).Return([]*model.User{
		{ID: "alice", FCMToken: "tok-alice", ParticipatingQuestIDs: []string{"q1"}},
	}, nil)

	err := svc.SendDailyReminders(context.Background())

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "SendMulticast", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_InactiveFrequencyNeverDue(t *testing.T) {
	// A weekly quest is not due on Wednesday, however incomplete it is.
	users, quests, timelines, notifier := newReminderMocks()
	svc := NewReminderService(users, quests, timelines, notifier, fixedClock(wednesdayTick), zap.NewNop())

	timelines.On("ListPostsSince", mock.Anything, mock.Anything).
		Return([]*model.TimelinePost{}, nil)
	quests.On("ListQuests", mock.Anything).Return([]*model.Quest{
		{ID: "qw", Frequency: model.FrequencyWeekly},
	}, nil)
	users.On("ListUsers", mock.Anything).Return([]*model.User{
		{ID: "alice", FCMToken: "tok-alice", ParticipatingQuestIDs: []string{"qw"}},
	}, nil)

	err := svc.SendDailyReminders(context.Background())

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "SendMulticast", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	timelines.AssertNumberOfCalls(t, "ListPostsSince", 1)
}

func TestReminderService_QuestJudgedAgainstOwnWindow(t *testing.T) {
	// Sunday tick: the weekly quest must be judged against the week window,
	// not the day window it happens to appear in.
	users, quests, timelines, notifier := newReminderMocks()
	svc := NewReminderService(users, quests, timelines, notifier, fixedClock(sundayTick), zap.NewNop())

	dayStart := time.Date(2024, 6, 9, 0, 0, 0, 0, schedule.JST)
	weekStart := time.Date(2024, 6, 3, 0, 0, 0, 0, schedule.JST)

	// The post shows up in the day window only; the week query misses it.
	timelines.On("ListPostsSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return since.Equal(dayStart)
	})).Return([]*model.TimelinePost{post("alice", "qw")}, nil)
	timelines.On("ListPostsSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return since.Equal(weekStart)
	})).Return([]*model.TimelinePost{}, nil)
	quests.On("ListQuests", mock.Anything).Return([]*model.Quest{
		{ID: "qw", Frequency: model.FrequencyWeekly},
	}, nil)
	users.On("ListUsers", mock.Anything).Return([]*model.User{
		{ID: "alice", FCMToken: "tok-alice", ParticipatingQuestIDs: []string{"qw"}},
	}, nil)
	notifier.On("SendMulticast", mock.Anything, []string{"tok-alice"}, reminderTitle, reminderBody).
		Return(&model.MulticastOutcome{SuccessCount: 1}, nil)

	err := svc.SendDailyReminders(context.Background())

	assert.NoError(t, err)
	notifier.AssertExpectations(t)
	timelines.AssertNumberOfCalls(t, "ListPostsSince", 2)
}

func TestReminderService_WeeklyCompletedWithinWeek(t *testing.T) {
	users, quests, timelines, notifier := newReminderMocks()
	svc := NewReminderService(users, quests, timelines, notifier, fixedClock(sundayTick), zap.NewNop())

	weekStart := time.Date(2024, 6, 3, 0, 0, 0, 0, schedule.JST)
	timelines.On("ListPostsSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return since.Equal(weekStart)
	})).Return([]*model.TimelinePost{post("alice", "qw")}, nil)
	timelines.On("ListPostsSince", mock.Anything, mock.Anything).
		Return([]*model.TimelinePost{}, nil)
	quests.On("ListQuests", mock.Anything).Return([]*model.Quest{
		{ID: "qw", Frequency: model.FrequencyWeekly},
	}, nil)
	users.On("ListUsers", mock.Anything).Return([]*model.User{
		{ID: "alice", FCMToken: "tok-alice", ParticipatingQuestIDs: []string{"qw"}},
	}, nil)

	err := svc.SendDailyReminders(context.Background())

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "SendMulticast", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_SkipsUsers(t *testing.T) {
	tests := []struct {
		name string
		user *model.User
	}{
		{
			name: "no push token",
			user: &model.User{ID: "bob", ParticipatingQuestIDs: []string{"q1"}},
		},
		{
			name: "no participating quests",
			user: &model.User{ID: "carol", FCMToken: "tok-carol"},
		},
		{
			name: "quest without a record is never due",
			user: &model.User{ID: "dave", FCMToken: "tok-dave", ParticipatingQuestIDs: []string{"ghost"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, quests, timelines, notifier := newReminderMocks()
			svc := NewReminderService(users, quests, timelines, notifier, fixedClock(wednesdayTick), zap.NewNop())

			timelines.On("ListPostsSince", mock.Anything, mock.Anything).
				Return([]*model.TimelinePost{}, nil)
			quests.On("ListQuests", mock.Anything).Return([]*model.Quest{
				{ID: "q1", Frequency: model.FrequencyDaily},
			}, nil)
			users.On("ListUsers", mock.Anything).Return([]*model.User{tt.user}, nil)

			err := svc.SendDailyReminders(context.Background())

			assert.NoError(t, err)
			notifier.AssertNotCalled(t, "SendMulticast", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReminderService_OneReminderPerUser(t *testing.T) {
	// Several missing quests still produce a single token entry.
	users, quests, timelines, notifier := newReminderMocks()
	svc := NewReminderService(users, quests, timelines, notifier, fixedClock(wednesdayTick), zap.NewNop())

	timelines.On("ListPostsSince", mock.Anything, mock.Anything).
		Return([]*model.TimelinePost{}, nil)
	quests.On("ListQuests", mock.Anything).Return([]*model.Quest{
		{ID: "q1", Frequency: model.FrequencyDaily},
		{ID: "q2", Frequency: model.FrequencyDaily},
	}, nil)
	users.On("ListUsers", mock.Anything).Return([]*model.User{
		{ID: "alice", FCMToken: "tok-alice", ParticipatingQuestIDs: []string{"q1", "q2"}},
	}, nil)
	notifier.On("SendMulticast", mock.Anything, []string{"tok-alice"}, reminderTitle, reminderBody).
		Return(&model.MulticastOutcome{SuccessCount: 1}, nil)

	err := svc.SendDailyReminders(context.Background())

	assert.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestReminderService_RepositoryError(t *testing.T) {
	users, quests, timelines, notifier := newReminderMocks()
	svc := NewReminderService(users, quests, timelines, notifier, fixedClock(wednesdayTick), zap.NewNop())

	timelines.On("ListPostsSince", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	err := svc.SendDailyReminders(context.Background())

	assert.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	notifier.AssertNotCalled(t, "SendMulticast", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
