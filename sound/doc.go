// Package sound plays the audio cue attached to a banner. Decoded
// sounds are cached so repeated banners with the same cue do not touch
// the filesystem again.
package sound
