// Package ffmpeg locates the ffmpeg and ffprobe executables used as the
// codec collaborator. Explicit paths win, then the SRTSTITCH_FFMPEG_PATH and
// SRTSTITCH_FFPROBE_PATH environment variables, then PATH, then a per-user
// cache populated from an embedded or downloaded static build.
package ffmpeg
