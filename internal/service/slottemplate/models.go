package slottemplate

import "github.com/m04kA/SMC-ArenaService/pkg/types"

// SlotInterval пара времени начала и конца для создания или изменения слота
type SlotInterval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
