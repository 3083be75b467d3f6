package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for optional configuration parameters.
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultLOEBaseURL = "https://api.loe.lviv.ua"
	DefaultLOETimeout = 15 * time.Second

	DefaultDBPath = "svitlobot.db"

	// Schedule of the poll loop: check the feed every 5 minutes.
	DefaultScheduleCheckCron = "*/5 * * * *"
	// Nightly VACUUM.
	DefaultSQLMaintenanceCron = "0 4 * * *"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	// Registered empty so the BOT_TELEGRAM_TOKEN environment override is
	// visible to Unmarshal; validation rejects the empty value.
	v.SetDefault("telegram.token", "")

	v.SetDefault("loe.base_url", DefaultLOEBaseURL)
	v.SetDefault("loe.timeout", DefaultLOETimeout)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("scheduler.tasks.schedule_check.enabled", true)
	v.SetDefault("scheduler.tasks.schedule_check.schedule", DefaultScheduleCheckCron)
	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", DefaultSQLMaintenanceCron)

	v.SetDefault("messages.welcome",
		"Привіт! Я бот, який стежить за оновленнями графіків відключень ⚡\n\n"+
			"Налаштуй свою групу командою, наприклад:\n/setup 3.1\n\n"+
			"Перевірити поточний збережений стан: /status")
	v.SetDefault("messages.help",
		"Команди:\n"+
			"/start — підписатися на оновлення графіків\n"+
			"/setup <група> — обрати групу відключень, наприклад /setup 3.1\n"+
			"/status — показати групу та останнє збережене повідомлення\n"+
			"/help — ця довідка")
	v.SetDefault("messages.setup_usage", "Вкажи номер групи.\nПриклад:\n/setup 3.1")
	v.SetDefault("messages.setup_saved",
		"Групу збережено: %s\nЯ повідомлю, коли з'явиться або зміниться графік для цієї групи.")
	v.SetDefault("messages.status_not_set",
		"Група ще не налаштована. Використай /setup, наприклад:\n/setup 3.1")
	v.SetDefault("messages.status_group", "Твоя група: %s")
	v.SetDefault("messages.status_last_header", "Останнє збережене повідомлення:")
	v.SetDefault("messages.status_no_messages", "Повідомлень ще немає — чекатиму оновлення графіка.")
	v.SetDefault("messages.general_error", "Сталася помилка. Спробуй пізніше.")
}
