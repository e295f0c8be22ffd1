// Package yamlmanifest implements config.Loader for YAML manifests.
//
// A YAML manifest carries the same model as the HCL form:
//
//	sources:
//	  - name: vert
//	    path: ${dir}/shaders/triangle.vert.glsl
//	artifacts:
//	  - name: vert_spv
//	    path: ${dir}/out/triangle.vert.spv
//	    action: exec
//	    inputs:
//	      - {tag: source, from: source.vert}
//	    command: ["${env.GLSLANG}", "-V", "-o", "$out", "$in.source"]
//	targets:
//	  - name: all
//	    build: [artifact.vert_spv]
//
// `${dir}` expands to the manifest's directory and `${env.NAME}` to an
// environment variable. Bare `$out` and `$in` tokens are left for the exec
// action.
package yamlmanifest
