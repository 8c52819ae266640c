package editor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gemlongman/motion-preprocessing-tool/cosmap"
	"github.com/gemlongman/motion-preprocessing-tool/math3d"
	"github.com/gemlongman/motion-preprocessing-tool/skeleton"
)

// Document is the result of an accepted session.
type Document struct {
	Name         string               `json:"name"`
	SessionID    string               `json:"session_id"`
	AligningRoot string               `json:"aligning_root"`
	Skeleton     skeleton.Description `json:"skeleton"`
	Model        *cosmap.Model        `json:"skeleton_model"`
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Save writes the document to a JSON file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	if err := d.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}

	return f.Close()
}

// SetAligningRoot picks the joint the skeleton is aligned by.
func (s *Session) SetAligningRoot(joint string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.skel.SetAligningRoot(joint); err != nil {
		return err
	}
	s.log.Infof("aligning root is now %s", joint)
	return nil
}

// SetScale rescales the skeleton's offsets. Scales which aren't positive are
// refused and leave the skeleton alone.
func (s *Session) SetScale(f float64) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.skel.SetScale(f); err != nil {
		return err
	}
	s.log.Infof("scale is now %.3f", f)
	return nil
}

// LoadDefaultPose replaces the rest rotations of the joints in frame, which
// changes the global rotations the axes are solved against.
func (s *Session) LoadDefaultPose(frame map[string]math3d.EulerAngles) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.skel.SetReferenceFrame(frame); err != nil {
		return err
	}
	s.log.Infof("loaded default pose for %d joints", len(frame))
	return nil
}

// Accept closes the session and returns the edited document. The name is
// required; without it the session stays open.
func (s *Session) Accept(name string) (*Document, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	s.state = sAccepted
	s.selected = ""
	s.log.Infof("accepted as %q with %d axes", name, len(s.model.Axes))

	return &Document{
		Name:         name,
		SessionID:    s.ID.String(),
		AligningRoot: s.skel.AligningRoot,
		Skeleton:     s.skel.Describe(),
		Model:        s.model.Clone(),
	}, nil
}

// Reject closes the session and undoes the changes made to the skeleton. The
// model passed to New was never touched.
func (s *Session) Reject() error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.skel.SetScale(s.origScale); err != nil {
		return err
	}
	if err := s.skel.SetReferenceFrame(s.origFrame); err != nil {
		return err
	}
	if err := s.skel.SetAligningRoot(s.origAligningRoot); err != nil {
		return err
	}

	s.state = sRejected
	s.selected = ""
	s.log.Info("rejected")
	return nil
}
