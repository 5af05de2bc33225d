package texture

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/logger"
)

// SkyboxDir is the directory under the data root holding one folder per skybox.
const SkyboxDir = "Skyboxes"

// faceNames are the conventional face file names in upload order.
var faceNames = [gpu.CubeFaceCount]string{"right", "left", "top", "bottom", "front", "back"}

// CubemapFaces returns the six face paths of a named skybox:
// <dir>/Skyboxes/<name>/{right,left,top,bottom,front,back}.jpg.
func CubemapFaces(dir, name string) [gpu.CubeFaceCount]string {
	var faces [gpu.CubeFaceCount]string
	for i, face := range faceNames {
		faces[i] = filepath.Join(dir, SkyboxDir, name, face+".jpg")
	}
	return faces
}

// LoadCubemap creates a cubemap from six face images ordered +X, -X, +Y, -Y,
// +Z, -Z. A face that cannot be read or decoded is logged and left empty.
// It returns the texture and the number of faces uploaded; the texture is 0
// only when the cubemap itself could not be created.
func LoadCubemap(dev gpu.Device, faces [gpu.CubeFaceCount]string) (gpu.Texture, int) {
	log := logger.Named("texture")

	tex, err := dev.CreateCubemap()
	if err != nil {
		log.Error("failed to create cubemap", zap.Error(err))
		return 0, 0
	}

	loaded := 0
	for i, path := range faces {
		face := gpu.CubeFace(i)

		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("cubemap face missing", zap.Stringer("face", face), zap.String("path", path), zap.Error(err))
			continue
		}
		img, err := Decode(data, path)
		if err != nil {
			log.Warn("cubemap face unreadable", zap.Stringer("face", face), zap.String("path", path), zap.Error(err))
			continue
		}
		if err := dev.UploadCubemapFace(tex, face, img); err != nil {
			log.Warn("cubemap face upload failed", zap.Stringer("face", face), zap.String("path", path), zap.Error(err))
			continue
		}
		loaded++
	}

	log.Debug("cubemap loaded", zap.Int("faces", loaded))
	return tex, loaded
}
