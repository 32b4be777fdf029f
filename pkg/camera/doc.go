// Package camera decodes the ESP32-CAM row stream into a framebuffer.
package camera

// The camera module streams a 64x64 image with 2 bits per pixel as a
// sequence of row records over a serial link:
//
//   'Y' '2' ROW PAYLOAD[16]
//
// There's no length or checksum in a record. The decoder locks onto the
// two sync bytes and takes the next 17 bytes as the row index and payload.
// Any garbage between records is skipped, so the stream recovers from
// corruption within one record length.
//
// Each payload byte packs 4 pixels which are only unpacked at render time.
//
// Producer: camera firmware
// Consumer: Model (via Receiver)
