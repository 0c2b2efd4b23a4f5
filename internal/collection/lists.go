package collection

import (
	"context"
	"strings"

	"marketlens/internal/types"
)

func (s *Store) KeywordLists(ctx context.Context) []types.KeywordList {
	return read[types.KeywordList](ctx, s, KeywordListsKey)
}

func (s *Store) KeywordList(ctx context.Context, id string) (types.KeywordList, bool) {
	for _, l := range s.KeywordLists(ctx) {
		if l.ID == id {
			return l, true
		}
	}
	return types.KeywordList{}, false
}

// CreateList appends a new empty list named by the trimmed name.
func (s *Store) CreateList(ctx context.Context, name string) (types.KeywordList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.KeywordList{}, ErrEmptyListName
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := types.KeywordList{
		ID:        s.newID(),
		Name:      name,
		Keywords:  []string{},
		CreatedAt: s.now().UTC(),
	}
	lists := load[types.KeywordList](ctx, s, KeywordListsKey)
	if err := save(ctx, s, KeywordListsKey, append(lists, list)); err != nil {
		return types.KeywordList{}, err
	}
	return list, nil
}

// DeleteList removes the list. Unknown ids are ignored.
func (s *Store) DeleteList(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists := load[types.KeywordList](ctx, s, KeywordListsKey)
	kept := lists[:0:0]
	for _, l := range lists {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(lists) {
		return nil
	}
	return save(ctx, s, KeywordListsKey, kept)
}

// AddKeyword appends the trimmed keyword. Duplicates are kept.
func (s *Store) AddKeyword(ctx context.Context, id, keyword string) (types.KeywordList, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return types.KeywordList{}, ErrEmptyKeyword
	}
	return s.updateList(ctx, id, func(l *types.KeywordList) {
		l.Keywords = append(l.Keywords, keyword)
	})
}

// RemoveKeyword drops every exact occurrence of keyword from the list.
func (s *Store) RemoveKeyword(ctx context.Context, id, keyword string) (types.KeywordList, error) {
	return s.updateList(ctx, id, func(l *types.KeywordList) {
		kept := make([]string, 0, len(l.Keywords))
		for _, kw := range l.Keywords {
			if kw != keyword {
				kept = append(kept, kw)
			}
		}
		l.Keywords = kept
	})
}

func (s *Store) updateList(ctx context.Context, id string, mutate func(*types.KeywordList)) (types.KeywordList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists := load[types.KeywordList](ctx, s, KeywordListsKey)
	for i := range lists {
		if lists[i].ID != id {
			continue
		}
		if lists[i].Keywords == nil {
			lists[i].Keywords = []string{}
		}
		mutate(&lists[i])
		if err := save(ctx, s, KeywordListsKey, lists); err != nil {
			return types.KeywordList{}, err
		}
		return lists[i], nil
	}
	return types.KeywordList{}, ErrListNotFound
}
