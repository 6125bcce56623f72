// Package leavetype provides the read-through leave type catalogue. Types
// are identified by code; the cache is warmed once at process start and is
// safe for concurrent readers.
package leavetype

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/fixtures"
)

type Catalog struct {
	repo leave.LeaveTypeRepository

	mu     sync.RWMutex
	byCode map[string]leave.LeaveType
	byID   map[string]leave.LeaveType
}

func NewCatalog(repo leave.LeaveTypeRepository) *Catalog {
	return &Catalog{
		repo:   repo,
		byCode: make(map[string]leave.LeaveType),
		byID:   make(map[string]leave.LeaveType),
	}
}

// Warm loads the full catalogue into the cache.
func (c *Catalog) Warm(ctx context.Context) error {
	types, err := c.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leave types: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, lt := range types {
		c.byID[lt.ID] = lt
		if lt.Code != nil {
			c.byCode[*lt.Code] = lt
		}
	}
	return nil
}

// EnsureDefaults creates the fixed catalogue entries that are missing
// (ANNUAL, SICK, UNPAID, HOLIDAY) and warms the cache with them.
func (c *Catalog) EnsureDefaults(ctx context.Context) error {
	for _, def := range fixtures.DefaultLeaveTypes {
		if _, err := c.GetOrCreate(ctx, def.Code, def.Name, def.Color); err != nil {
			return fmt.Errorf("failed to ensure leave type %s: %w", def.Code, err)
		}
	}
	return nil
}

// GetByCode returns the cached type for a code, falling back to the store.
func (c *Catalog) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	c.mu.RLock()
	lt, ok := c.byCode[code]
	c.mu.RUnlock()
	if ok {
		return lt, nil
	}

	lt, err := c.repo.GetByCode(ctx, code)
	if err != nil {
		return leave.LeaveType{}, err
	}
	c.put(lt)
	return lt, nil
}

// GetByID returns the cached type for an id, falling back to the store.
func (c *Catalog) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	c.mu.RLock()
	lt, ok := c.byID[id]
	c.mu.RUnlock()
	if ok {
		return lt, nil
	}

	lt, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveType{}, err
	}
	c.put(lt)
	return lt, nil
}

// GetOrCreate returns the type for code, creating it with the given display
// name and color when it does not exist yet.
func (c *Catalog) GetOrCreate(ctx context.Context, code, name string, color int) (leave.LeaveType, error) {
	lt, err := c.GetByCode(ctx, code)
	if err == nil {
		return lt, nil
	}
	if !errors.Is(err, leave.ErrLeaveTypeNotFound) {
		return leave.LeaveType{}, err
	}

	codeCopy := code
	created, err := c.repo.Create(ctx, leave.LeaveType{
		ID:    uuid.NewString(),
		Name:  name,
		Code:  &codeCopy,
		Color: &color,
	})
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type %s: %w", code, err)
	}
	c.put(created)
	return created, nil
}

func (c *Catalog) put(lt leave.LeaveType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[lt.ID] = lt
	if lt.Code != nil {
		c.byCode[*lt.Code] = lt
	}
}
