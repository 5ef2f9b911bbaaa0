package specialistservice

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/PsyBookingService/internal/domain"
)

// Directory справочник специалистов.
// Источник правды SpecialistService; при его недоступности используется список из конфига.
type Directory struct {
	remote Remote
	static map[string]domain.Provider
	log    Logger
}

// NewDirectory создает справочник. remote может быть nil, тогда используется только конфиг.
func NewDirectory(remote Remote, static []domain.Provider, log Logger) *Directory {
	byID := make(map[string]domain.Provider, len(static))
	for _, p := range static {
		byID[p.ID] = p
	}
	return &Directory{
		remote: remote,
		static: byID,
		log:    log,
	}
}

// GetProvider возвращает специалиста по ID
func (d *Directory) GetProvider(ctx context.Context, id string) (*domain.Provider, error) {
	if d.remote == nil {
		return d.staticProvider(id)
	}

	specialist, err := d.remote.GetSpecialist(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSpecialistNotFound) {
			d.log.Info("Specialist id=%s not found", id)
			return nil, err
		}

		// Недоступность сервиса не должна ломать запись, если специалист есть в конфиге
		d.log.Error("SpecialistService unavailable, applying graceful degradation for id=%s: %v", id, err)
		provider, staticErr := d.staticProvider(id)
		if staticErr != nil {
			return nil, fmt.Errorf("%w: id=%s, error=%v", ErrServiceDegraded, id, err)
		}
		return provider, nil
	}

	provider := specialist.ToDomain()
	return &provider, nil
}

// ListActive возвращает активных специалистов, отсортированных по ID
func (d *Directory) ListActive(ctx context.Context) ([]domain.Provider, error) {
	var all []domain.Provider

	if d.remote != nil {
		specialists, err := d.remote.ListSpecialists(ctx)
		if err != nil {
			d.log.Error("SpecialistService unavailable, using configured providers: %v", err)
			all = d.staticList()
		} else {
			all = make([]domain.Provider, 0, len(specialists))
			for _, s := range specialists {
				all = append(all, s.ToDomain())
			}
		}
	} else {
		all = d.staticList()
	}

	active := make([]domain.Provider, 0, len(all))
	for _, p := range all {
		if p.Active {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

// IDs идентификаторы всех известных из конфига специалистов
func (d *Directory) IDs() []string {
	ids := make([]string, 0, len(d.static))
	for id := range d.static {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (d *Directory) staticProvider(id string) (*domain.Provider, error) {
	p, ok := d.static[id]
	if !ok {
		return nil, ErrSpecialistNotFound
	}
	return &p, nil
}

func (d *Directory) staticList() []domain.Provider {
	list := make([]domain.Provider, 0, len(d.static))
	for _, p := range d.static {
		list = append(list, p)
	}
	return list
}
