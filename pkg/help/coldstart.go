package help

const ColdstartYAML = `# fois-setup Quick Start

what_it_does: |
  Downloads the FOIS 2025 tutorial archive, installs its event_frames
  (.ttl + image pairs) into the data directory, and falls back to three
  placeholder samples when the download or extraction fails.

commands:
  default_setup: |
    fois-setup

  local_setup: |
    fois-setup setup --data-dir ./tutorial-fois-2025 --extract-root ./.fois-tmp --archive-path ./.fois-tmp/tutorial_data.zip

  offline_samples: |
    fois-setup samples --data-dir ./tutorial-fois-2025

  verify_only: |
    fois-setup verify --data-dir ./tutorial-fois-2025

  with_history: |
    fois-setup setup --history-db ./fois-setup.db
    fois-setup history --history-db ./fois-setup.db --limit 5

  from_config: |
    fois-setup --config fois-setup.yaml setup

config_keys:
  - archive_url
  - data_dir
  - extract_root
  - archive_path
  - archive_root
  - tutorial_dir
  - event_frames_dir
  - sample_count
  - images
  - timeout
  - cache_dir
  - cache_ttl
  - history_db
  - summary_file

exit_codes:
  0: "verification passed (at least one .ttl file in event_frames)"
  1: "verification failed"
  2: "invalid configuration or history database error"
`
