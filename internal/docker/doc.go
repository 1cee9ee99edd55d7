// Package docker checks the local docker engine and writes files into the
// Edge device data volume.
//
// Status maps the exit code of "docker info": 0 is running, 1 is installed
// but stopped, and a missing binary is not installed.
//
// CopyToVolume reaches a named volume without a running container:
//
//	docker container create --name temp_container_for_copying_edge_device_data \
//	    -v edge-device-data:/data alpine
//	docker cp <file> temp_container_for_copying_edge_device_data:/data
//	docker rm temp_container_for_copying_edge_device_data
package docker
