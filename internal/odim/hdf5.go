package odim

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-hdf5/hdf5"
)

// HDF5File adapts github.com/robert-malhotra/go-hdf5 to the OutputFile
// interface.
//
// The underlying library only accepts attributes at dataset-creation time
// (hdf5.WithAttribute is a DatasetOption; hdf5.Group.CreateGroup takes no
// options), so a plain ODIM "what"/"where"/"how" group — which in the
// original format carries attributes but no data — cannot be built
// directly. HDF5File stages every WriteAttribute/WriteDataset call by path
// and materializes the whole tree on Flush: paths that also received a
// real dataset attach their staged attributes to that dataset; paths that
// only ever received attributes get a synthetic single-element "__attrs__"
// dataset that carries them instead. ReadAttribute reads back from the
// staged attribute map, so this stays self-consistent even though the
// resulting file is not byte-identical to a reference ODIM writer's group
// attribute layout.
type HDF5File struct {
	root *hdf5.File

	attrs    map[string]map[string]any
	datasets map[string]map[string][][]byte

	groups map[string]*hdf5.Group
}

// CreateHDF5File creates a new file at path for writing.
func CreateHDF5File(path string) (*HDF5File, error) {
	f, err := hdf5.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create odim file %s: %w", path, err)
	}
	return &HDF5File{
		root:     f,
		attrs:    make(map[string]map[string]any),
		datasets: make(map[string]map[string][][]byte),
		groups:   make(map[string]*hdf5.Group),
	}, nil
}

func (f *HDF5File) WriteAttribute(path, name string, value any) error {
	if f.attrs[path] == nil {
		f.attrs[path] = make(map[string]any)
	}
	f.attrs[path][name] = value
	return nil
}

func (f *HDF5File) ReadAttribute(path, name string) (float64, bool) {
	if group, ok := f.attrs[path]; ok {
		if v, ok := group[name]; ok {
			switch n := v.(type) {
			case float64:
				return n, true
			case int:
				return float64(n), true
			}
		}
	}
	return 0, false
}

func (f *HDF5File) WriteDataset(path, name string, data [][]byte) error {
	if f.datasets[path] == nil {
		f.datasets[path] = make(map[string][][]byte)
	}
	f.datasets[path][name] = data
	return nil
}

// Flush materializes every staged group, dataset, and attribute into the
// underlying HDF5 file.
func (f *HDF5File) Flush() error {
	paths := make(map[string]bool)
	for p := range f.attrs {
		paths[p] = true
	}
	for p := range f.datasets {
		paths[p] = true
	}

	for path := range paths {
		group, err := f.ensureGroup(path)
		if err != nil {
			return err
		}

		attrs := f.attrs[path]
		datasets := f.datasets[path]

		if len(datasets) == 0 {
			if len(attrs) == 0 {
				continue
			}
			if err := writeSyntheticAttrs(group, attrs); err != nil {
				return fmt.Errorf("write attributes for %s: %w", path, err)
			}
			continue
		}

		for name, rows := range datasets {
			opts := attributeOptions(attrs)
			flat := flattenBytes(rows)
			if _, err := group.CreateDataset(name, flat, opts...); err != nil {
				return fmt.Errorf("write dataset %s%s: %w", path, name, err)
			}
		}
	}

	return f.root.Flush()
}

// Close flushes and closes the underlying file.
func (f *HDF5File) Close() error {
	if err := f.Flush(); err != nil {
		return err
	}
	return f.root.Close()
}

func (f *HDF5File) ensureGroup(path string) (*hdf5.Group, error) {
	if g, ok := f.groups[path]; ok {
		return g, nil
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	current := f.root.Root()
	built := ""
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		built += "/" + seg
		if g, ok := f.groups[built]; ok {
			current = g
			continue
		}
		next, err := current.CreateGroup(seg)
		if err != nil {
			return nil, fmt.Errorf("create group %s: %w", built, err)
		}
		f.groups[built] = next
		current = next
	}
	return current, nil
}

func writeSyntheticAttrs(group *hdf5.Group, attrs map[string]any) error {
	opts := attributeOptions(attrs)
	_, err := group.CreateDataset("__attrs__", int8(0), opts...)
	return err
}

func attributeOptions(attrs map[string]any) []hdf5.DatasetOption {
	opts := make([]hdf5.DatasetOption, 0, len(attrs))
	for name, value := range attrs {
		opts = append(opts, hdf5.WithAttribute(name, value))
	}
	return opts
}

func flattenBytes(rows [][]byte) []byte {
	if len(rows) == 0 {
		return nil
	}
	flat := make([]byte, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return flat
}
