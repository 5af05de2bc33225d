package model

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/engine/drawable"
	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/material"
	"github.com/Faultbox/meshforge/internal/engine/texture"
	"github.com/Faultbox/meshforge/internal/logger"
	"github.com/Faultbox/meshforge/pkg/formats/obj"
)

// Loader ingests OBJ files onto a device.
type Loader struct {
	Device gpu.Device
	log    *zap.Logger
}

// NewLoader creates a loader uploading to dev.
func NewLoader(dev gpu.Device) *Loader {
	return &Loader{Device: dev, log: logger.Named("model")}
}

// Ingest loads path with a temporary Loader.
func Ingest(dev gpu.Device, path string) *drawable.Asset {
	return NewLoader(dev).Ingest(path)
}

// Ingest parses the OBJ file at path and uploads one drawable per non-empty
// shape. A file that cannot be parsed yields an asset with no drawables,
// materials or textures; callers treat an empty asset as a failed load.
//
// Every texture referenced by the file's materials is loaded before any
// geometry is uploaded. A missing texture terminates the process.
func (l *Loader) Ingest(path string) *drawable.Asset {
	log := l.logger().With(zap.String("path", path))
	asset := drawable.NewAsset(filepath.Base(path))

	file, err := obj.Load(path, obj.Options{Triangulate: true})
	if err != nil {
		log.Error("failed to load model", zap.Error(err))
		return asset
	}
	for _, w := range file.Warnings {
		log.Warn("model warning", zap.String("detail", w))
	}

	asset.Materials = material.WithDefault(ConvertMaterials(file.Materials))
	texture.NewCache(l.Device, asset.Textures).LoadMaterials(path, asset.Materials)

	for i := range file.Shapes {
		shape := BuildShape(&file.Attrib, &file.Shapes[i], asset.Materials)
		if shape.IsEmpty() {
			continue
		}

		d, err := l.upload(&shape, asset.Materials)
		if err != nil {
			log.Error("failed to upload shape", zap.String("shape", shape.Name), zap.Error(err))
			continue
		}
		asset.Add(d)
	}

	log.Info("model loaded",
		zap.Int("shapes", len(file.Shapes)),
		zap.Int("drawables", len(asset.Drawables)),
		zap.Int("materials", len(asset.Materials)),
		zap.Int("textures", len(asset.Textures)),
		zap.Int("triangles", asset.Triangles()))

	return asset
}

// upload creates the vertex buffer of a shape and its drawable record.
func (l *Loader) upload(shape *Shape, materials []material.Material) (drawable.Drawable, error) {
	data := geometry.Pack(shape.Vertices)
	buf, err := l.Device.CreateVertexBuffer(data, nil)
	if err != nil {
		return drawable.Drawable{}, err
	}

	mat := materials[shape.MaterialID]
	return drawable.Drawable{
		Buffer:        buf,
		NumTriangles:  geometry.TriangleCount(data),
		Bounds:        shape.Bounds,
		MaterialID:    shape.MaterialID,
		Material:      mat,
		Textures:      mat.Textures,
		MaterialCount: len(materials),
		Ranges:        shape.Ranges,
	}, nil
}

func (l *Loader) logger() *zap.Logger {
	if l.log == nil {
		l.log = logger.Named("model")
	}
	return l.log
}
