package engine

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"
	"lifex.health/infrastructure/biometric/types"
	"lifex.health/infrastructure/logger"
)

// GocvFaceEngine runs the full vision pipeline on OpenCV DNN: YuNet
// for detection, an ONNX 68-point landmark net and an ONNX embedding
// net. All three models must load or initialisation fails; the service
// never degrades to stub behaviour at runtime.
type GocvFaceEngine struct {
	detector     gocv.FaceDetectorYN
	landmarkNet  gocv.Net
	embeddingNet gocv.Net
	mutex        sync.Mutex
}

type EngineConfig struct {
	DetectorModelPath  string
	LandmarkModelPath  string
	EmbeddingModelPath string
}

const (
	detectorInputSize  = 320
	modelInputSize     = 112
	scoreThreshold     = 0.6
	nmsThreshold       = 0.3
	detectorTopK       = 50
)

func ConfigFromEnv() EngineConfig {
	return EngineConfig{
		DetectorModelPath:  envOr("FACE_DETECTOR_MODEL", "./models/face_detection_yunet_2023mar.onnx"),
		LandmarkModelPath:  envOr("FACE_LANDMARK_MODEL", "./models/face_landmarks_68.onnx"),
		EmbeddingModelPath: envOr("FACE_EMBEDDING_MODEL", "./models/face_recognition_sface_2021dec.onnx"),
	}
}

func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// NewGocvFaceEngine loads every model up front and fails if any is
// missing.
func NewGocvFaceEngine(config EngineConfig) (*GocvFaceEngine, error) {
	for _, path := range []string{config.DetectorModelPath, config.LandmarkModelPath, config.EmbeddingModelPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("model file not found: %s", path)
		}
	}

	detector := gocv.NewFaceDetectorYN(config.DetectorModelPath, "", image.Pt(detectorInputSize, detectorInputSize))
	detector.SetScoreThreshold(scoreThreshold)
	detector.SetNMSThreshold(nmsThreshold)
	detector.SetTopK(detectorTopK)

	landmarkNet := gocv.ReadNet(config.LandmarkModelPath, "")
	if landmarkNet.Empty() {
		detector.Close()
		return nil, fmt.Errorf("failed to load landmark model from %s", config.LandmarkModelPath)
	}

	embeddingNet := gocv.ReadNet(config.EmbeddingModelPath, "")
	if embeddingNet.Empty() {
		detector.Close()
		landmarkNet.Close()
		return nil, fmt.Errorf("failed to load embedding model from %s", config.EmbeddingModelPath)
	}

	logger.Info("face engine initialised", logger.LoggerOptions{
		Key: "models",
		Data: map[string]string{
			"detector":  config.DetectorModelPath,
			"landmarks": config.LandmarkModelPath,
			"embedding": config.EmbeddingModelPath,
		},
	})

	return &GocvFaceEngine{
		detector:     detector,
		landmarkNet:  landmarkNet,
		embeddingNet: embeddingNet,
	}, nil
}

func (engine *GocvFaceEngine) Close() {
	engine.detector.Close()
	engine.landmarkNet.Close()
	engine.embeddingNet.Close()
}

// DetectFaces locates faces with YuNet, then refines each detection
// with the 68-point landmark net.
func (engine *GocvFaceEngine) DetectFaces(img image.Image) ([]types.Region, error) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	engine.detector.SetInputSize(image.Pt(mat.Cols(), mat.Rows()))

	facesMat := gocv.NewMat()
	defer facesMat.Close()
	engine.detector.Detect(mat, &facesMat)

	var regions []types.Region
	for i := 0; i < facesMat.Rows(); i++ {
		x := int(facesMat.GetFloatAt(i, 0))
		y := int(facesMat.GetFloatAt(i, 1))
		w := int(facesMat.GetFloatAt(i, 2))
		h := int(facesMat.GetFloatAt(i, 3))
		if w <= 0 || h <= 0 {
			continue
		}

		rect := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, mat.Cols(), mat.Rows()))
		if rect.Empty() {
			continue
		}

		landmarks, err := engine.detectLandmarks(mat, rect)
		if err != nil {
			logger.Warning("landmark detection failed for face", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			landmarks = nil
		}

		regions = append(regions, types.Region{Rect: rect, Landmarks: landmarks})
	}
	return regions, nil
}

// detectLandmarks runs the 68-point net over the face crop and maps
// the normalised outputs back into image coordinates.
func (engine *GocvFaceEngine) detectLandmarks(mat gocv.Mat, rect image.Rectangle) ([]image.Point, error) {
	face := mat.Region(rect)
	defer face.Close()

	blob := gocv.BlobFromImage(face, 1.0/255.0, image.Pt(modelInputSize, modelInputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	engine.landmarkNet.SetInput(blob, "")
	output := engine.landmarkNet.Forward("")
	defer output.Close()

	if output.Total() < 136 {
		return nil, fmt.Errorf("landmark net produced %d values, expected 136", output.Total())
	}

	points := make([]image.Point, 68)
	for i := 0; i < 68; i++ {
		nx := float64(output.GetFloatAt(0, i*2))
		ny := float64(output.GetFloatAt(0, i*2+1))
		points[i] = image.Point{
			X: rect.Min.X + int(nx*float64(rect.Dx())),
			Y: rect.Min.Y + int(ny*float64(rect.Dy())),
		}
	}
	return points, nil
}

// Encode produces the 128-dimension embedding for a cropped face.
func (engine *GocvFaceEngine) Encode(face image.Image) (types.FaceEncoding, error) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	mat, err := gocv.ImageToMatRGB(face)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("empty face image")
	}

	blob := gocv.BlobFromImage(mat, 1.0/127.5, image.Pt(modelInputSize, modelInputSize), gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	engine.embeddingNet.SetInput(blob, "")
	output := engine.embeddingNet.Forward("")
	defer output.Close()

	if output.Total() < types.Dimensions {
		return nil, fmt.Errorf("embedding net produced %d values, expected %d", output.Total(), types.Dimensions)
	}

	encoding := make(types.FaceEncoding, types.Dimensions)
	var norm float64
	for i := 0; i < types.Dimensions; i++ {
		value := float64(output.GetFloatAt(0, i))
		encoding[i] = value
		norm += value * value
	}

	// L2 normalisation keeps distances comparable across captures
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range encoding {
			encoding[i] /= norm
		}
	}
	return encoding, nil
}
