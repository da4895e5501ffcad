package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/karlmarxlive/artchaos-bot/internal/domain"
	"github.com/karlmarxlive/artchaos-bot/internal/notification"
)

const (
	textHelp = "📋 Справка по использованию бота:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/book - Забронировать время в мастерской\n" +
		"/my - Мои записи\n" +
		"/balance - Баланс посещений\n" +
		"/cancel - Прервать бронирование\n" +
		"/help - Показать эту справку\n\n" +
		"💡 Для бронирования используйте команду /book и следуйте инструкциям бота."

	textAdminHelp = "\n\nАдминистратор:\n" +
		"/grant <id> <n> - Изменить баланс пользователя\n" +
		"/stats - Статистика"

	textChooseDate     = "📅 На какой день вы хотите записаться?\n\nВыберите дату из списка ниже:"
	textChooseDuration = "⏱️ Сколько времени вам нужно?"
	textBookingAborted = "❌ Бронирование отменено.\n\nЕсли захотите забронировать время, используйте команду /book"
	textNothingToAbort = "Сейчас нет активного бронирования. Начать: /book"
	textStaleDialog    = "⌛ Этот диалог устарел. Начните заново: /book"
	textNoSlotsLeft    = "😔 На этот день свободного времени уже не осталось. Выберите другой день: /book"
	textNoBookings     = "У вас нет предстоящих записей. Записаться: /book"
	textUseKeyboard    = "Используйте кнопки или команды. Справка: /help"
	textUnknownCommand = "Неизвестная команда. Справка: /help"
	textGrantUsage     = "Использование: /grant <id пользователя> <количество>"
	textInternalError  = "❌ Произошла ошибка. Пожалуйста, попробуйте еще раз."
	textBookedFarewell = "\n\nДо встречи в мастерской! 🎨"
	textPickToCancel   = "\n\nЧтобы отменить запись, нажмите на кнопку ниже."
)

func welcomeText(name string) string {
	return fmt.Sprintf("Привет, %s! 👋\n\n"+
		"Добро пожаловать в бот для бронирования времени в творческой мастерской ArtChaos! 🎨\n\n"+
		"Доступные команды:\n"+
		"/book - Забронировать время\n"+
		"/help - Показать справку", name)
}

func dateChosenText(date string, loc *time.Location) string {
	day, err := time.ParseInLocation(domain.DateLayout, date, loc)
	if err != nil {
		return "🕐 Выберите время начала бронирования:"
	}
	return fmt.Sprintf("✅ Отлично! Вы выбрали %s\n\n🕐 Теперь выберите время начала бронирования:", day.Format("02.01.2006"))
}

func upcomingText(bookings []*domain.Booking, loc *time.Location) string {
	var sb strings.Builder
	sb.WriteString("📋 Ваши записи:\n")
	for _, b := range bookings {
		start := b.StartTime.In(loc)
		fmt.Fprintf(&sb, "\n• %s %s–%s (%s)",
			start.Format("02.01.2006"),
			start.Format(domain.ClockLayout),
			b.EndTime().In(loc).Format(domain.ClockLayout),
			notification.FormatDuration(b.Duration),
		)
	}
	sb.WriteString(textPickToCancel)
	return sb.String()
}

func statsText(s *domain.Stats) string {
	return fmt.Sprintf("📊 Статистика\n\n"+
		"Пользователей: %d\n"+
		"Активных записей: %d\n"+
		"Предстоящих записей: %d\n"+
		"Отменённых записей: %d\n"+
		"Посещений на балансах: %d",
		s.Users, s.ActiveBookings, s.FutureBookings, s.CancelledBookings, s.CreditsInCirculation)
}

// errorText turns a service error into a message for the user. The second
// result is false for errors the user cannot act on.
func errorText(err error, loc *time.Location) (string, bool) {
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &conflict):
		iv := domain.Interval{Start: conflict.Existing.Start.In(loc), End: conflict.Existing.End.In(loc)}
		return fmt.Sprintf("❌ Это время пересекается с вашей записью %s.\n\nВыберите другое время: /book", iv), true
	case errors.Is(err, domain.ErrPastSlot):
		return "❌ Это время уже прошло. Выберите другое: /book", true
	case errors.Is(err, domain.ErrCrossesDayBoundary):
		return "❌ Запись должна закончиться до полуночи. Выберите время пораньше или короче: /book", true
	case errors.Is(err, domain.ErrInsufficientCredit):
		return "❌ На балансе нет посещений. Обратитесь к администратору мастерской.", true
	case errors.Is(err, domain.ErrConflict):
		return "❌ Ваши записи изменились во время бронирования. Попробуйте еще раз: /book", true
	case errors.Is(err, domain.ErrNegativeBalance):
		return "❌ Баланс не может стать отрицательным.", true
	case errors.Is(err, domain.ErrForbidden):
		return "⛔ Недостаточно прав.", true
	case errors.Is(err, domain.ErrUserNotFound):
		return "❌ Пользователь не найден.", true
	case errors.Is(err, domain.ErrBookingNotFound):
		return "❌ Запись не найдена.", true
	case errors.Is(err, domain.ErrValidation):
		return "❌ Некорректные данные: " + err.Error(), true
	default:
		return textInternalError, false
	}
}
