package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"messenger/domain"
	"messenger/errors"
	"messenger/services"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// userMessage maps store failures to the user-facing notifications of the
// original UI. Application state is untouched when any of these fire.
func userMessage(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrInvalidInput):
		return "Пожалуйста, заполните все поля"
	case stderrors.Is(err, errors.ErrDuplicatePhone):
		return "Пользователь с таким номером уже существует"
	case stderrors.Is(err, errors.ErrInvalidCredentials):
		return "Неверный номер телефона или пароль"
	case stderrors.Is(err, errors.ErrStorageUnavailable):
		return "Хранилище недоступно, изменения не сохранены"
	}
	return err.Error()
}

func renderAvatar(user domain.User) {
	swatch := color.HEX(user.Avatar.Color).Sprintf(" %s ", user.Avatar.Initials)
	fmt.Printf("%s %s (%s)\n", swatch, user.Name, user.Phone)
}

func renderChats(views []services.ChatView, now time.Time) {
	if len(views) == 0 {
		color.Info.Println("У вас пока нет чатов — добавьте контакт по номеру телефона")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "", "Контакт", "Телефон", "Последнее сообщение", "Когда"})
	for i, v := range views {
		last := "Нет сообщений"
		at := v.Chat.CreatedAt
		if v.Chat.LastMessage != nil {
			last = v.Chat.LastMessage.Text
			at = v.Chat.LastMessage.Timestamp
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			color.HEX(v.Other.Avatar.Color).Sprint(v.Other.Avatar.Initials),
			v.Other.Name,
			v.Other.Phone,
			last,
			formatRelative(at, now),
		})
	}
	table.Render()
}

func renderChatWindow(view services.ChatView, in *bufio.Scanner) {
	renderAvatar(view.Other)
	color.Info.Println("был(а) недавно")

	if len(view.Chat.Messages) == 0 {
		fmt.Println("Нет сообщений")
	}
	for _, msg := range view.Chat.Messages {
		fmt.Printf("[%s] %s\n", msg.CreatedAt.Local().Format("15:04"), msg.Text)
	}

	fmt.Println("Написать сообщение (пустая строка — назад):")
	for {
		fmt.Print("… ")
		if !in.Scan() || strings.TrimSpace(in.Text()) == "" {
			return
		}
		color.Info.Println("Функция отправки сообщений будет добавлена позже")
	}
}

var shortWeekdays = [...]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"}

// formatRelative renders a timestamp the way the chat list shows it: "just
// now" under a minute, minutes under an hour, clock time within a day, a
// short weekday within a week, a date otherwise.
func formatRelative(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "только что"
	case diff < time.Hour:
		return fmt.Sprintf("%d мин", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return t.Local().Format("15:04")
	case diff < 7*24*time.Hour:
		return shortWeekdays[t.Local().Weekday()]
	}
	return t.Local().Format("02.01")
}
