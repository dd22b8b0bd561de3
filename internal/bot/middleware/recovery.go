package middleware

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// RecoverFromPanic гасит панику в обработчике одного апдейта.
// Каждый апдейт живёт в своей горутине, поэтому паника без recover
// уронила бы весь процесс вместе с крон-свипом прогресса.
// update_id в логе позволяет найти «ядовитый» апдейт и воспроизвести его.
func RecoverFromPanic(updateID int) {
	if r := recover(); r != nil {
		log.WithFields(log.Fields{
			"component": "panic_recovery",
			"update_id": updateID,
			"panic":     fmt.Sprintf("%v", r),
			"stack":     string(debug.Stack()),
		}).Error("ПАНИКА в обработчике апдейта — восстановлено")
	}
}
