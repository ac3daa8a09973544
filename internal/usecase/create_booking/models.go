package create_booking

import "github.com/m04kA/appointment-booking/internal/domain"

// Request модель запроса на создание бронирования.
// Date и StartTime приходят строками и разбираются при валидации.
type Request struct {
	Principal  domain.Principal // Кто бронирует; становится владельцем бронирования
	BusinessID int64            // ID бизнеса
	Date       string           // Дата "YYYY-MM-DD"
	StartTime  string           // Время начала слота "HH:MM"
	Notes      *string          // Дополнительные заметки (опционально)
}
