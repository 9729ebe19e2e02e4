// Package container stores report documents as attributes of HDF5 files.
package container

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/hdf5"
)

// File is an HDF5 file opened for appending attributes to its root group.
type File struct {
	path string
	file *hdf5.File
	root *hdf5.Group
}

// Open opens path read-write, creating it when it does not exist.
// An existing file that is not HDF5 is rejected.
func Open(path string) (*File, error) {
	var (
		f   *hdf5.File
		err error
	)

	switch _, statErr := os.Stat(path); {
	case statErr == nil:
		if !hdf5.IsHDF5(path) {
			return nil, fmt.Errorf("%s exists and is not an HDF5 file", path)
		}
		f, err = hdf5.OpenFile(path, hdf5.F_ACC_RDWR)
	case errors.Is(statErr, os.ErrNotExist):
		f, err = hdf5.CreateFile(path, hdf5.F_ACC_EXCL)
	default:
		return nil, fmt.Errorf("checking %s: %w", path, statErr)
	}
	if err != nil {
		return nil, fmt.Errorf("opening HDF5 file %s: %w", path, err)
	}

	root, err := f.OpenGroup("/")
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening root group of %s: %w", path, err)
	}
	return &File{path: path, file: f, root: root}, nil
}

// Path returns the file's location on disk.
func (f *File) Path() string { return f.path }

// SetAttribute stores value as a string attribute of the root group,
// replacing an existing attribute of the same name.
func (f *File) SetAttribute(name string, value []byte) error {
	if name == "" {
		return fmt.Errorf("empty attribute name")
	}

	exists, err := attributeExists(f.root.ID(), name)
	if err != nil {
		return fmt.Errorf("%s: %w", f.path, err)
	}
	if exists {
		if err := deleteAttribute(f.root.ID(), name); err != nil {
			return fmt.Errorf("%s: %w", f.path, err)
		}
	}

	space, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return fmt.Errorf("creating dataspace: %w", err)
	}
	defer space.Close()

	attr, err := f.root.CreateAttribute(name, hdf5.T_GO_STRING, space)
	if err != nil {
		return fmt.Errorf("creating attribute %q in %s: %w", name, f.path, err)
	}
	defer attr.Close()

	if err := writeString(attr.ID(), string(value)); err != nil {
		return fmt.Errorf("writing attribute %q in %s: %w", name, f.path, err)
	}
	return nil
}

// Attribute reads back a string attribute of the root group.
func (f *File) Attribute(name string) ([]byte, error) {
	attr, err := f.root.OpenAttribute(name)
	if err != nil {
		return nil, fmt.Errorf("opening attribute %q in %s: %w", name, f.path, err)
	}
	defer attr.Close()

	s, err := readString(attr.ID())
	if err != nil {
		return nil, fmt.Errorf("reading attribute %q in %s: %w", name, f.path, err)
	}
	return []byte(s), nil
}

// HasAttribute reports whether the root group carries an attribute called name.
func (f *File) HasAttribute(name string) (bool, error) {
	return attributeExists(f.root.ID(), name)
}

// Close releases the root group and the file.
func (f *File) Close() error {
	var errs []error
	if f.root != nil {
		errs = append(errs, f.root.Close())
		f.root = nil
	}
	if f.file != nil {
		errs = append(errs, f.file.Close())
		f.file = nil
	}
	return errors.Join(errs...)
}
