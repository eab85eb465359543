package project

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Project lifecycle status labels, kept in the studio's source language.
const (
	StatusDraft      = "مسودة"
	StatusInProgress = "قيد الإعداد"
)

// DefaultRole is the narrator role every fresh segment starts with.
const DefaultRole = "الراوي"

var ErrLastSegment = errors.New("project must keep at least one segment")

// Segment is one unit of narration bound to one role and one voice.
// Segment order is the temporal order of the final audio.
type Segment struct {
	ID            int    `json:"id"`
	Label         string `json:"label"`
	Role          string `json:"role"`
	SelectedVoice string `json:"selected_voice"`
	Content       string `json:"content"`
	PilotPath     string `json:"pilot_path,omitempty"`
	FinalPath     string `json:"final_path,omitempty"`
}

// Project is the single-owner aggregate for one audiobook session. All
// mutating methods are copy-on-write: they return a new value with a
// refreshed LastEdited and never alias the receiver's segment slice.
type Project struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DialectID       string    `json:"dialect_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	LastEdited      time.Time `json:"last_edited"`
	Content         string    `json:"content"`
	EnhancedContent string    `json:"enhanced_content"`
	Segments        []Segment `json:"segments"`
}

// New creates a draft project with the mandatory initial narrator segment.
func New(name, dialectID string) Project {
	now := time.Now()
	return Project{
		ID:         strconv.FormatInt(now.UnixNano(), 36),
		Name:       name,
		DialectID:  dialectID,
		Status:     StatusDraft,
		CreatedAt:  now,
		LastEdited: now,
		Segments: []Segment{
			{ID: 1, Label: "مقدمة الراوي", Role: DefaultRole},
		},
	}
}

// touch clones the project with fresh segment backing and edit timestamp.
func (p Project) touch() Project {
	segs := make([]Segment, len(p.Segments))
	copy(segs, p.Segments)
	p.Segments = segs
	p.LastEdited = time.Now()
	return p
}

// SourceText is the text narration works from: the enhanced script when one
// was saved, the raw import otherwise.
func (p Project) SourceText() string {
	if strings.TrimSpace(p.EnhancedContent) != "" {
		return p.EnhancedContent
	}
	return p.Content
}

func (p Project) SetName(name string) Project {
	p = p.touch()
	p.Name = name
	return p
}

func (p Project) SetContent(text string) Project {
	p = p.touch()
	p.Content = text
	return p
}

func (p Project) SetEnhanced(text string) Project {
	p = p.touch()
	p.EnhancedContent = text
	return p
}

func (p Project) SetStatus(status string) Project {
	p = p.touch()
	p.Status = status
	return p
}

func (p Project) nextSegmentID() int {
	max := 0
	for _, s := range p.Segments {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1
}

// ReplaceSegments swaps the whole ordered segment list, e.g. after an
// analysis pass. An empty list violates the one-segment invariant.
func (p Project) ReplaceSegments(segs []Segment) (Project, error) {
	if len(segs) == 0 {
		return p, ErrLastSegment
	}
	p = p.touch()
	p.Segments = make([]Segment, len(segs))
	copy(p.Segments, segs)
	return p, nil
}

// SplitByParagraphs rebuilds the segment list from the source text, one
// narrator segment per non-empty paragraph, all on defaultVoice.
func (p Project) SplitByParagraphs(defaultVoice string) (Project, error) {
	text := p.SourceText()
	var segs []Segment
	id := 1
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		segs = append(segs, Segment{
			ID:            id,
			Label:         fmt.Sprintf("فقرة %d", id),
			Role:          DefaultRole,
			SelectedVoice: defaultVoice,
			Content:       para,
		})
		id++
	}
	if len(segs) == 0 {
		return p, errors.New("no paragraphs to split")
	}
	return p.ReplaceSegments(segs)
}

// InsertAfter adds a blank character segment directly after index.
func (p Project) InsertAfter(index int) (Project, error) {
	if index < 0 || index >= len(p.Segments) {
		return p, fmt.Errorf("segment index %d out of range", index)
	}
	p = p.touch()
	seg := Segment{ID: p.nextSegmentID(), Label: "مقطع جديد", Role: "شخصية"}
	p.Segments = append(p.Segments[:index+1], append([]Segment{seg}, p.Segments[index+1:]...)...)
	return p, nil
}

func (p Project) Remove(index int) (Project, error) {
	if index < 0 || index >= len(p.Segments) {
		return p, fmt.Errorf("segment index %d out of range", index)
	}
	if len(p.Segments) <= 1 {
		return p, ErrLastSegment
	}
	p = p.touch()
	p.Segments = append(p.Segments[:index], p.Segments[index+1:]...)
	return p, nil
}

// MergeWithNext folds segment index+1 into segment index, keeping the
// earlier segment's role and voice.
func (p Project) MergeWithNext(index int) (Project, error) {
	if index < 0 || index >= len(p.Segments)-1 {
		return p, fmt.Errorf("segment index %d has no successor to merge", index)
	}
	p = p.touch()
	p.Segments[index].Content = p.Segments[index].Content + "\n\n" + p.Segments[index+1].Content
	p.Segments = append(p.Segments[:index+1], p.Segments[index+2:]...)
	return p, nil
}

// UpdateSegment applies fn to a copy of the segment at index.
func (p Project) UpdateSegment(index int, fn func(*Segment)) (Project, error) {
	if index < 0 || index >= len(p.Segments) {
		return p, fmt.Errorf("segment index %d out of range", index)
	}
	p = p.touch()
	fn(&p.Segments[index])
	return p, nil
}

// SegmentByID resolves a segment and its position by id.
func (p Project) SegmentByID(id int) (Segment, int, bool) {
	for i, s := range p.Segments {
		if s.ID == id {
			return s, i, true
		}
	}
	return Segment{}, -1, false
}
