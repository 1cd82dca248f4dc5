package persistence

import (
	"os"

	"swtd/internal/models"
	"swtd/internal/persistence/interfaces"
	"swtd/internal/providers"
	"swtd/internal/services"
)

type FileManager struct {
	service    services.TrackerServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.TrackerServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	return WriteSnapshotFile(fileName, f.service.GetSnapshot(), f.compressor)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeApp, "Snapshot file is not compressed, trying plain JSON")
		decompressed = data
	}

	snap, err := models.DecodeSnapshot(decompressed)
	if err != nil {
		return err
	}
	f.service.ImportSnapshot(snap)
	return nil
}

// WriteSnapshotFile persists a snapshot as zstd-compressed JSON, written to a
// temp file and renamed into place so a crash never leaves a torn file.
func WriteSnapshotFile(fileName string, snap *models.Snapshot, compressor interfaces.CompressorInterface) error {
	jsonData, err := snap.Encode()
	if err != nil {
		return err
	}
	data, err := compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// ReadSnapshotFile loads a snapshot file. A missing file yields (nil, nil).
// Compressed files are the native format; plain JSON is accepted as well so
// uncompressed exports can be dropped in directly.
func ReadSnapshotFile(fileName string, compressor interfaces.CompressorInterface) (*models.Snapshot, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if decompressed, err := compressor.Decompress(data); err == nil {
		data = decompressed
	}

	return models.DecodeSnapshot(data)
}
