// Package ioutils provides the file system and image helpers shared by the
// musicbase services.
//
// This package contains functions for:
//   - Listing album directories and writing files atomically
//   - Renaming directories without overwriting existing ones
//   - Filename sanitization for cross-platform compatibility
//   - Locking a collection directory against concurrent runs
//   - Cover art resizing and format conversion
//
// # File Operations
//
//	// List album directories
//	dirs, err := ioutils.ListDirs("/music")
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/music/Yes_-_[1972]_Close_to_the_Edge/Yes.yml", data)
//
//	// Rename, failing when the target exists
//	err := ioutils.MoveDir("/music/Yes - Close to the Edge", "/music/Yes_-_Close_to_the_Edge")
//
// # Locking
//
// Lock takes an exclusive advisory lock on a directory; a second process
// gets ErrLocked instead of waiting:
//
//	lock, err := ioutils.Lock("/music")
//	if errors.Is(err, ioutils.ErrLocked) {
//	    // another run is active
//	}
//	defer lock.Unlock()
//
// # Image Processing
//
// The ImageService handles cover art manipulation:
//
//	svc := ioutils.NewImageService()
//
//	// Resize image to fit within 500x500
//	resized, _ := svc.ResizeImage(ctx, imageData, 500, 500)
//
//	// Convert to JPEG
//	jpeg, _ := svc.ConvertToJPEG(ctx, pngData)
package ioutils
