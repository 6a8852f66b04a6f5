// Package domain defines the core business entities of the application:
// users, categories, and tasks, together with their validation rules.
// Entities here are persistence-agnostic; stores and services operate on them.
package domain
