// Package mesh generates the sphere geometry shared by every body in the scene.
package mesh
