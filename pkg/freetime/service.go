package freetime

import (
	"context"

	"github.com/gapfit/gapfit/internal/config"
	"github.com/gapfit/gapfit/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetFreeBlocks(ctx context.Context) ([]FreeBlock, error)
}

type ServiceImpl struct {
	scheduleService schedule.Service
	window          Window
}

func NewService(scheduleService schedule.Service, day config.Day) (*ServiceImpl, error) {
	window, err := ParseWindow(day.Start, day.End)
	if err != nil {
		return nil, err
	}
	return &ServiceImpl{scheduleService: scheduleService, window: window}, nil
}

// GetFreeBlocks returns every free block of the student's current schedule.
// Returns schedule.ErrScheduleNotFound when nothing has been uploaded.
func (s *ServiceImpl) GetFreeBlocks(ctx context.Context) ([]FreeBlock, error) {
	events, err := s.scheduleService.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}
	blocks := FindFreeBlocks(events, s.window)
	log.Debugf("derived %d free blocks from %d events", len(blocks), len(events))
	return blocks, nil
}
