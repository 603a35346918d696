package client

import (
	"time"

	"studorgCPT/internal/models"
)

// Встроенные примерные данные для работы без API.
// Используются только при AllowSampleFallback.

func sampleAnnouncements() []models.Announcement {
	now := time.Now()
	publish := now.AddDate(0, 0, -3)

	return []models.Announcement{
		{
			AnnouncementID: "00000000-0000-0000-0000-000000000001",
			Title:          "Общее собрание организации",
			Description:    "Первое общее собрание семестра",
			Content:        "Приглашаем всех участников на общее собрание. Повестка: планы на семестр, выборы комитетов.",
			Type:           models.AnnouncementMeeting,
			IsPublished:    true,
			Priority:       "high",
			PublishDate:    &publish,
			TargetAudience: []string{"all"},
			Agenda:         []string{"Открытие", "Планы на семестр", "Выборы комитетов"},
			Views:          42,
			CreatedAt:      publish,
			UpdatedAt:      publish,
		},
		{
			AnnouncementID: "00000000-0000-0000-0000-000000000002",
			Title:          "Итоги олимпиады по программированию",
			Description:    "Поздравляем победителей",
			Content:        "Команда организации заняла призовые места на межвузовской олимпиаде.",
			Type:           models.AnnouncementAchievement,
			IsPublished:    true,
			Priority:       "normal",
			PublishDate:    &publish,
			TargetAudience: []string{"members"},
			Awardees: models.Awardees{
				{Name: "Анна Иванова", Award: "1 место"},
				{Name: "Петр Смирнов", Award: "2 место"},
			},
			Views:     17,
			CreatedAt: publish,
			UpdatedAt: publish,
		},
	}
}

func sampleEvents() []models.Event {
	now := time.Now()
	eventDate := now.AddDate(0, 0, 14)
	publish := now.AddDate(0, 0, -1)

	return []models.Event{
		{
			EventID:        "00000000-0000-0000-0000-000000000101",
			Title:          "Хакатон осеннего семестра",
			Description:    "48 часов командной разработки",
			Content:        "Регистрация команд открыта. Темы объявим на открытии.",
			Tags:           []string{"hackathon", "coding"},
			EventDate:      eventDate,
			Time:           "10:00",
			Mode:           "Onsite",
			Location:       "Главный корпус, ауд. 301",
			Organizer:      "Студенческий совет",
			IsPublished:    true,
			Priority:       "high",
			PublishDate:    &publish,
			TargetAudience: []string{"all"},
			GalleryImages:  []string{},
			CreatedAt:      publish,
			UpdatedAt:      publish,
		},
	}
}
