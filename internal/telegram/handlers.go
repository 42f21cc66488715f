package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aekiratli/medicine-reminder/internal/domain"
)

func splitArgs(s string) []string {
	return strings.Fields(s)
}

func (r *Router) sendText(chatID int64, text string) {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		r.log.Error("send failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

// requireUser resolves the chat's user or replies with the onboarding
// hint. Creation/deletion commands require /start first.
func (r *Router) requireUser(ctx context.Context, chatID int64) (*domain.User, bool) {
	u, err := r.repo.GetUserByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			r.sendText(chatID, notRegisteredText)
		} else {
			r.log.Error("get user failed", zap.Error(err), zap.Int64("chatID", chatID))
			r.sendText(chatID, internalErrorText)
		}
		return nil, false
	}
	return u, true
}

// parseMedicineArgs validates the shared <name> <interval> <HH:MM>
// argument triple of /new_medicine and /delete_medicine. On failure
// the specific rejection has already been sent to the chat.
func (r *Router) parseMedicineArgs(chatID int64, args []string, usage string) (name string, intervalDays int, timeOfDay string, ok bool) {
	if len(args) != 3 {
		r.sendText(chatID, usage)
		return "", 0, "", false
	}
	name = args[0]

	intervalDays, err := domain.ParseIntervalDays(args[1])
	if err != nil {
		r.sendText(chatID, invalidIntervalText)
		return "", 0, "", false
	}

	if _, _, err := domain.ParseTimeOfDay(args[2]); err != nil {
		r.sendText(chatID, invalidTimeText)
		return "", 0, "", false
	}
	return name, intervalDays, args[2], true
}

func (r *Router) handleStart(ctx context.Context, chatID int64) {
	if _, err := r.repo.GetUserByChatID(ctx, chatID); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			r.log.Error("get user failed", zap.Error(err), zap.Int64("chatID", chatID))
			r.sendText(chatID, internalErrorText)
			return
		}
		if _, err := r.repo.CreateUser(ctx, chatID); err != nil {
			r.log.Error("create user failed", zap.Error(err), zap.Int64("chatID", chatID))
			r.sendText(chatID, internalErrorText)
			return
		}
		r.log.Info("user registered", zap.Int64("chatID", chatID))
	}

	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send help failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

func (r *Router) handleNewMedicine(ctx context.Context, chatID int64, args []string) {
	name, intervalDays, timeOfDay, ok := r.parseMedicineArgs(chatID, args, newMedicineUsage)
	if !ok {
		return
	}
	u, ok := r.requireUser(ctx, chatID)
	if !ok {
		return
	}

	hour, minute, _ := domain.ParseTimeOfDay(timeOfDay)
	now := time.Now()
	next := domain.InitialNextRun(now, hour, minute, intervalDays)

	m := &domain.Medicine{
		UserID:       u.ID,
		Name:         name,
		IntervalDays: intervalDays,
		TimeOfDay:    timeOfDay,
		NextRun:      next,
	}
	if err := r.repo.CreateMedicine(ctx, m); err != nil {
		if errors.Is(err, domain.ErrDuplicateMedicine) {
			r.sendText(chatID, duplicateMedicineText)
			return
		}
		r.log.Error("create medicine failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, internalErrorText)
		return
	}

	r.sendText(chatID, fmt.Sprintf(
		"Medicine '%s' has been added.\nNext run: %s\nTime difference: %s",
		name, domain.FormatInstant(next), domain.FormatUntil(now, next),
	))
}

func (r *Router) handleDeleteMedicine(ctx context.Context, chatID int64, args []string) {
	name, intervalDays, timeOfDay, ok := r.parseMedicineArgs(chatID, args, deleteMedicineUsage)
	if !ok {
		return
	}
	u, ok := r.requireUser(ctx, chatID)
	if !ok {
		return
	}

	m, err := r.repo.FindMedicine(ctx, u.ID, name, intervalDays, timeOfDay)
	if err != nil {
		if errors.Is(err, domain.ErrMedicineNotFound) {
			r.sendText(chatID, medicineNotFoundText)
			return
		}
		r.log.Error("find medicine failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, internalErrorText)
		return
	}
	if err := r.repo.DeleteMedicine(ctx, m.ID); err != nil {
		r.log.Error("delete medicine failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, internalErrorText)
		return
	}

	r.sendText(chatID, fmt.Sprintf("Medicine '%s' has been deleted.", name))
}

func (r *Router) handleList(ctx context.Context, chatID int64) {
	u, ok := r.requireUser(ctx, chatID)
	if !ok {
		return
	}

	medicines, err := r.repo.ListMedicinesForUser(ctx, u.ID)
	if err != nil {
		r.log.Error("list medicines failed", zap.Error(err), zap.Int64("chatID", chatID))
		r.sendText(chatID, internalErrorText)
		return
	}
	if len(medicines) == 0 {
		r.sendText(chatID, noMedicinesText)
		return
	}

	now := time.Now()
	var lines []string
	for _, m := range medicines {
		// A due-but-not-yet-swept medicine shows the instant it will
		// land on after the sweep advances it.
		next := m.NextRun
		if next.Before(now) {
			next = domain.NextRun(next, m.IntervalDays)
		}
		lines = append(lines, fmt.Sprintf(
			"- %s: every %d days at %s, next take on %s",
			m.Name, m.IntervalDays, m.TimeOfDay, domain.FormatInstant(next),
		))
	}
	r.sendText(chatID, strings.Join(lines, "\n"))

	table := tgbotapi.NewMessage(chatID, "\n```\n"+medicineTable(medicines)+"\n```")
	table.ParseMode = tgbotapi.ModeMarkdown
	if _, err := r.bot.Send(table); err != nil {
		r.log.Error("send table failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

// medicineTable renders the monospace overview table.
func medicineTable(medicines []domain.Medicine) string {
	var b strings.Builder
	b.WriteString("ID  | Medicine Name   | Interval (days) | Hour\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for i, m := range medicines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%-3d | %-15s | %-15d | %s", m.ID, m.Name, m.IntervalDays, m.TimeOfDay))
	}
	return b.String()
}
