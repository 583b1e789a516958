package binder

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"ezcfg/host"
	"ezcfg/internal/diagnostic"
	"ezcfg/options"
	"ezcfg/store"
)

// ErrIsDirectory is returned when a configuration path names a directory.
var ErrIsDirectory = errors.New("configuration path is a directory")

// Binder runs reconciliation passes against files of one host.
type Binder struct {
	host  host.Host
	fs    afero.Fs
	flags options.Enum
}

// Option configures a Binder.
type Option func(*Binder)

// WithFs makes the binder read and write files through fs.
func WithFs(fs afero.Fs) Option {
	return func(b *Binder) {
		b.fs = fs
	}
}

// WithFlags replaces the default behavior flags.
func WithFlags(flags options.Enum) Option {
	return func(b *Binder) {
		b.flags = flags
	}
}

// New returns a binder for h working on the OS filesystem with
// options.Default.
func New(h host.Host, opts ...Option) *Binder {
	b := &Binder{
		host:  h,
		fs:    afero.NewOsFs(),
		flags: options.Default,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Fs returns the filesystem the binder works on.
func (b *Binder) Fs() afero.Fs {
	return b.fs
}

// Flags returns the behavior flags of the binder.
func (b *Binder) Flags() options.Enum {
	return b.flags
}

// Resolve returns rel joined to the host data directory. Absolute paths are
// returned unchanged.
func (b *Binder) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}

	return filepath.Join(b.host.DataDir(), rel)
}

// Load loads target from the default file, saving it back when the pass
// changed the store and options.PersistOnLoad is set.
func (b *Binder) Load(target any) (*diagnostic.Diagnostics, error) {
	return b.LoadPath(target, host.DefaultFile, b.flags.Has(options.PersistOnLoad))
}

// LoadPath loads target from a path relative to the host data directory.
func (b *Binder) LoadPath(target any, rel string, persist bool) (*diagnostic.Diagnostics, error) {
	return b.LoadFile(target, b.Resolve(rel), persist)
}

// LoadFile loads target from file, creating the file and its directory
// when missing. The file is written at most once, and only when persist is
// set and the pass changed the store.
func (b *Binder) LoadFile(target any, file string, persist bool) (*diagnostic.Diagnostics, error) {
	f, err := b.open(file)
	if err != nil {
		return nil, err
	}

	changed, diags, err := LoadStore(target, f.Section, b.flags)
	if err != nil {
		return nil, err
	}

	b.report(diags, file)

	if !changed || !persist {
		return diags, nil
	}

	if err := b.persist(f); err != nil {
		return diags, err
	}

	return diags, nil
}

// Save saves target to the default file.
func (b *Binder) Save(target any) (*diagnostic.Diagnostics, error) {
	return b.SavePath(target, host.DefaultFile)
}

// SavePath saves target to a path relative to the host data directory.
func (b *Binder) SavePath(target any, rel string) (*diagnostic.Diagnostics, error) {
	return b.SaveFile(target, b.Resolve(rel))
}

// SaveFile writes the fields of target that differ from file. The file is
// only rewritten when at least one field differed.
func (b *Binder) SaveFile(target any, file string) (*diagnostic.Diagnostics, error) {
	f, err := b.open(file)
	if err != nil {
		return nil, err
	}

	changed, diags, err := SaveStore(target, f.Section, b.flags)
	if err != nil {
		return nil, err
	}

	b.report(diags, file)

	if !changed {
		return diags, nil
	}

	if err := b.persist(f); err != nil {
		return diags, err
	}

	return diags, nil
}

// CopyFrom copies the bound fields of source into target.
func (b *Binder) CopyFrom(target, source any) (*diagnostic.Diagnostics, error) {
	diags, err := CopyFrom(target, source, b.flags)
	if err != nil {
		return nil, err
	}

	b.report(diags, "")

	return diags, nil
}

// open makes sure file exists as a regular file and loads it.
func (b *Binder) open(file string) (*store.File, error) {
	log := b.host.Logger()

	info, err := b.fs.Stat(file)
	switch {
	case err == nil && info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, file)
	case errors.Is(err, fs.ErrNotExist):
		dir := filepath.Dir(file)
		if ok, _ := afero.DirExists(b.fs, dir); !ok {
			if err := b.fs.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
			log.WithField("dir", dir).Info("directory created")
		}

		if err := afero.WriteFile(b.fs, file, nil, 0o644); err != nil {
			return nil, fmt.Errorf("failed to create file %s: %w", file, err)
		}
		log.WithField("file", file).Info("file created")
	case err != nil:
		return nil, fmt.Errorf("failed to stat %s: %w", file, err)
	}

	f, err := store.Load(b.fs, file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file, err)
	}

	return f, nil
}

func (b *Binder) persist(f *store.File) error {
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save %s: %w", f.Path(), err)
	}

	b.host.Logger().WithField("file", f.Path()).Info("configuration saved")

	return nil
}

// report logs what a pass had to say. Warnings and errors go out at their
// level, infos at debug.
func (b *Binder) report(diags *diagnostic.Diagnostics, file string) {
	if diags == nil {
		return
	}

	log := b.host.Logger()
	if file != "" {
		log = log.WithField("file", file)
	}

	entry := func(d diagnostic.Diagnostic) *logrus.Entry {
		e := log.WithFields(logrus.Fields{"code": d.Code})
		if d.Field != "" {
			e = e.WithField("field", d.Field)
		}
		if d.Path != "" {
			e = e.WithField("path", d.Path)
		}
		if d.Cause != nil {
			e = e.WithError(d.Cause)
		}

		return e
	}

	for _, d := range diags.Infos {
		entry(d).Debug(d.Message)
	}

	for _, d := range diags.Warnings {
		entry(d).Warn(d.Message)
	}

	for _, d := range diags.Errors {
		entry(d).Error(d.Message)
	}
}
