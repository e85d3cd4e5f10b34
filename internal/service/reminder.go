package service

import (
	"context"
	"fmt"
	"time"

	"habitcircle_backend/internal/model"
	"habitcircle_backend/internal/schedule"

	"go.uber.org/zap"
)

const (
	reminderTitle = "🚨 本日のノルマ未達成"
	reminderBody  = "証拠の提出がまだ確認されていません。チームメンバーが監視しています！"
)

type completionKey struct {
	userID  string
	questID string
}

type ReminderService struct {
	users     UserRepository
	quests    QuestRepository
	timelines TimelineRepository
	notifier  NotificationServiceI
	now       func() time.Time
	log       *zap.Logger
}

func NewReminderService(
	users UserRepository,
	quests QuestRepository,
	timelines TimelineRepository,
	notifier NotificationServiceI,
	now func() time.Time,
	log *zap.Logger,
) *ReminderService {
	if now == nil {
		now = time.Now
	}
	return &ReminderService{
		users:     users,
		quests:    quests,
		timelines: timelines,
		notifier:  notifier,
		now:       now,
		log:       log,
	}
}

// SendDailyReminders runs one reminder pass: it collects the completed
// (user, quest) pairs for every frequency due on this tick, then notifies each
// user who has at least one due quest without a completion in that quest's own
// window. The pass is a point-in-time approximation; posts racing with it may
// be missed or counted.
func (s *ReminderService) SendDailyReminders(ctx context.Context) error {
	windows := schedule.Resolve(s.now())

	completed, err := s.completedPairs(ctx, windows)
	if err != nil {
		return err
	}

	questFreq, err := s.questFrequencies(ctx)
	if err != nil {
		return err
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	var tokens []string
	for _, user := range users {
		if len(user.ParticipatingQuestIDs) == 0 || user.FCMToken == "" {
			continue
		}
		if s.needsReminder(user, questFreq, completed) {
			tokens = append(tokens, user.FCMToken)
		}
	}

	if len(tokens) == 0 {
		s.log.Info("no users to remind today")
		return nil
	}

	s.log.Info("sending reminders", zap.Int("user_count", len(tokens)))
	outcome, err := s.notifier.SendMulticast(ctx, tokens, reminderTitle, reminderBody)
	if err != nil {
		return fmt.Errorf("failed to send reminders: %w", err)
	}

	s.log.Info("reminder pass finished",
		zap.Int("success_count", outcome.SuccessCount),
		zap.Int("failure_count", outcome.FailureCount()))
	return nil
}

// completedPairs loads, per active frequency, the set of (user, quest) pairs
// with a post created on/after that frequency's window start.
func (s *ReminderService) completedPairs(ctx context.Context, windows schedule.Windows) (map[model.Frequency]map[completionKey]struct{}, error) {
	completed := make(map[model.Frequency]map[completionKey]struct{}, len(windows.Active))
	for _, freq := range windows.Active {
		start, _ := windows.Start(freq)
		posts, err := s.timelines.ListPostsSince(ctx, start)
		if err != nil {
			return nil, fmt.Errorf("failed to list posts for %s window: %w", freq, err)
		}
		pairs := make(map[completionKey]struct{}, len(posts))
		for _, post := range posts {
			pairs[completionKey{userID: post.UserID, questID: post.QuestID}] = struct{}{}
		}
		completed[freq] = pairs
		s.log.Info("collected completions",
			zap.String("frequency", string(freq)),
			zap.Int("pair_count", len(pairs)))
	}
	return completed, nil
}

func (s *ReminderService) questFrequencies(ctx context.Context) (map[string]model.Frequency, error) {
	quests, err := s.quests.ListQuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}
	freq := make(map[string]model.Frequency, len(quests))
	for _, q := range quests {
		freq[q.ID] = q.Frequency
	}
	return freq, nil
}

// needsReminder reports whether the user has any due quest missing a
// completion. Each quest is judged only against its own frequency's window;
// quests whose frequency is not active this tick, or with no quest record at
// all, are not due. The first miss decides: the reminder is binary.
func (s *ReminderService) needsReminder(
	user *model.User,
	questFreq map[string]model.Frequency,
	completed map[model.Frequency]map[completionKey]struct{},
) bool {
	for _, questID := range user.ParticipatingQuestIDs {
		freq, ok := questFreq[questID]
		if !ok {
			continue
		}
		pairs, active := completed[freq]
		if !active {
			continue
		}
		if _, done := pairs[completionKey{userID: user.ID, questID: questID}]; !done {
			return true
		}
	}
	return false
}

var _ ReminderServiceI = (*ReminderService)(nil)
