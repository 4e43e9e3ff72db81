package notifier

import (
	"fmt"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
)

func FormatMessage(p Pending) string {
	return fmt.Sprintf(
		"New to-do item from %s:\n%s\nCreated: %s",
		p.Username,
		p.Text,
		p.CreatedAt.Format(constants.NotifierTimestampLayout),
	)
}
